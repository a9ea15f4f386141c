package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// 消息角色。
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// imageSentinel 标记用户消息正文之后附带的图片地址。
const imageSentinel = "\nURL:"

// Message 表示会话中的一条消息。
type Message struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// NewMessage 创建一条带唯一 ID 与当前时间戳的消息。
func NewMessage(sessionID, role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// SplitImageSentinel 将消息内容拆分为可见文本与图片地址。
// 没有哨兵标记时原样返回文本，图片地址为空。
func SplitImageSentinel(content string) (text, imageURL string) {
	idx := strings.LastIndex(content, imageSentinel)
	if idx < 0 {
		return content, ""
	}
	url := strings.TrimSpace(content[idx+len(imageSentinel):])
	if url == "" {
		return content, ""
	}
	return content[:idx], url
}

// JoinImageSentinel 将可见文本与图片地址合并为存储内容。
func JoinImageSentinel(text, imageURL string) string {
	if imageURL == "" {
		return text
	}
	return text + imageSentinel + imageURL
}
