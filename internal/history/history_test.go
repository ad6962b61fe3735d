package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"Shkuba/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(p1, p2 string, s1, s2 int, at time.Time) Result {
	w := p1
	if s2 > s1 {
		w = p2
	}
	return Result{ID: uuid.NewString(), P1: p1, P2: p2, Score1: s1, Score2: s2, Winner: w, Rounds: 3, FinishedAt: at}
}

func TestMemoryRecent(t *testing.T) {
	ctx := context.Background()
	rec := NewMemory()
	base := time.Now()
	require.NoError(t, rec.Record(ctx, result("alice", "bot", 21, 12, base)))
	require.NoError(t, rec.Record(ctx, result("bob", "carol", 22, 19, base.Add(time.Minute))))
	require.NoError(t, rec.Record(ctx, result("carol", "alice", 11, 21, base.Add(2*time.Minute))))

	got, err := rec.Recent(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "carol", got[0].P1, "newest first")
	assert.Equal(t, "alice", got[1].P1)

	got, err = rec.Recent(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = rec.Recent(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := NewMemory()
	require.NoError(t, rec.Record(context.Background(), result("alice", "bot", 21, 3, time.Now())))

	r := gin.New()
	r.GET("/history/:player", NewHandler(rec).Recent)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history/alice?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct{ Results []Result }
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "alice", body.Results[0].Winner)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history/alice?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// 需要真实数据库：SHKUBA_TEST_DSN=postgres://... go test ./internal/history
func TestPostgresRecorder(t *testing.T) {
	dsn := os.Getenv("SHKUBA_TEST_DSN")
	if dsn == "" {
		t.Skip("SHKUBA_TEST_DSN not set")
	}
	ctx := context.Background()
	require.NoError(t, storage.InitPostgres(ctx, dsn))
	t.Cleanup(storage.Close)

	pg := NewPostgres(storage.DB)
	require.NoError(t, pg.Migrate(ctx))

	player := "pg-" + uuid.NewString()
	base := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, pg.Record(ctx, result(player, "bot", 21, 9, base)))
	require.NoError(t, pg.Record(ctx, result("bot", player, 14, 22, base.Add(time.Second))))

	got, err := pg.Recent(ctx, player, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bot", got[0].P1)
	assert.Equal(t, player, got[0].Winner)
	assert.True(t, got[1].FinishedAt.Equal(base))
}
