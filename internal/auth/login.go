package auth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"Shkuba/internal/utils"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
)

type GuestRequest struct {
	Name string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Address   string `json:"address" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Nonce     string `json:"nonce" binding:"required"`
}

type Handler struct {
	secret []byte
	nonces *nonceStore
}

// 工厂方法：创建 handler
func NewHandler(secret []byte) *Handler {
	return &Handler{secret: secret, nonces: newNonceStore()}
}

var guestName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,24}$`)

// reserved 不能被玩家占用的名字
var reserved = map[string]bool{"bot": true}

// POST /auth/guest  body: {name}
func (h *Handler) Guest(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if !guestName.MatchString(name) || reserved[strings.ToLower(name)] || strings.HasPrefix(name, "0x") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid name"})
		return
	}
	h.issue(c, name)
}

// SignMessage is the text the wallet signs for nonce.
func SignMessage(nonce string) string {
	return "Sign this message to authenticate with Shkuba. Nonce: " + nonce
}

// recoverAddress 恢复 personal_sign 签名者地址
func recoverAddress(msg, signature string) (string, error) {
	// 构造与 MetaMask personal_sign 完全一致的消息
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	hash := crypto.Keccak256Hash([]byte(prefixed))

	sigBytes, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil {
		return "", err
	}
	if len(sigBytes) != crypto.SignatureLength {
		return "", errors.New("bad signature length")
	}
	// 修正 V 值
	if sigBytes[crypto.RecoveryIDOffset] >= 27 {
		sigBytes[crypto.RecoveryIDOffset] -= 27
	}
	pubKey, err := crypto.SigToPub(hash.Bytes(), sigBytes)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(*pubKey).Hex(), nil
}

// POST /auth/login  body: {address, signature, nonce}
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	// nonce 只允许用一次
	if !h.nonces.use(req.Nonce, time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nonce"})
		return
	}

	recovered, err := recoverAddress(SignMessage(req.Nonce), req.Signature)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verify failed"})
		return
	}
	if !strings.EqualFold(recovered, req.Address) {
		utils.Log.Warn("signature mismatch", "claimed", req.Address, "recovered", recovered)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "signature mismatch"})
		return
	}
	h.issue(c, recovered)
}

// 验证成功 → 生成 JWT
func (h *Handler) issue(c *gin.Context, subject string) {
	jwtStr, err := IssueToken(h.secret, subject, TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "jwt generation failed"})
		return
	}
	utils.Log.Info("login", "player", subject)
	c.JSON(http.StatusOK, gin.H{"jwt": jwtStr, "player": subject})
}
