package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"Shkuba/internal/game/engine"
	"Shkuba/internal/game/table"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	JWT struct {
		Secret string
	}
	Log struct {
		Level string
	}
	Lobby struct {
		PlayerTTL int `mapstructure:"playerTTL"` // 秒
		RoomTTL   int `mapstructure:"roomTTL"`
	}
	Game Game
}

type Game struct {
	WinThreshold int    `mapstructure:"winThreshold"`
	KingOnBoard  string `mapstructure:"kingOnBoard"`
	Ties         string `mapstructure:"ties"`
	LongSuit     string `mapstructure:"longSuit"`
	BotDelayMs   int    `mapstructure:"botDelayMs"`
}

var C Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("lobby.playerTTL", 300)
	v.SetDefault("lobby.roomTTL", 7200)
	v.SetDefault("game.winThreshold", 21)
	v.SetDefault("game.kingOnBoard", "redraw")
	v.SetDefault("game.ties", "void")
	v.SetDefault("game.longSuit", "clubs")
	v.SetDefault("game.botDelayMs", 600)
}

// Load reads path (YAML) into C. A missing file is fine when every value
// comes from defaults or SHKUBA_* environment variables.
func Load(path string) error {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("shkuba")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about
	for _, k := range []string{"database.dsn", "redis.addr", "redis.password", "redis.db", "jwt.secret"} {
		_ = v.BindEnv(k)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if _, err := c.Game.Rules(); err != nil {
		return fmt.Errorf("game config: %w", err)
	}
	C = c
	return nil
}

// Rules converts the game section into engine rules.
func (g Game) Rules() (engine.Rules, error) {
	r := engine.DefaultRules()
	if g.WinThreshold != 0 {
		r.WinThreshold = g.WinThreshold
	}
	if g.KingOnBoard != "" {
		k, err := engine.ParseKingRule(g.KingOnBoard)
		if err != nil {
			return r, err
		}
		r.KingOnBoard = k
	}
	if g.Ties != "" {
		t, err := engine.ParseTieRule(g.Ties)
		if err != nil {
			return r, err
		}
		r.Ties = t
	}
	if g.LongSuit != "" {
		s, err := table.ParseSuit(g.LongSuit)
		if err != nil {
			return r, err
		}
		r.LongSuit = s
	}
	return r, r.Validate()
}
