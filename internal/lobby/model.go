package lobby

import "time"

// AlertRequest 提醒某位在线玩家
type AlertRequest struct {
	To string `json:"to" binding:"required"`
}

// JoinResponse 返回是否已配对；配对成功时给出房间信息
type JoinResponse struct {
	Queued  bool     `json:"queued"`
	RoomID  string   `json:"roomId,omitempty"`
	Players []string `json:"players,omitempty"`
}

// Room 两名真人玩家的配对结果
type Room struct {
	ID        string    `json:"id"`
	Players   []string  `json:"players"`
	CreatedAt time.Time `json:"createdAt"`
}
