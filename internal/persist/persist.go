package persist

import (
	"context"

	"SonicChat/internal/extract"
)

// Request 描述一条待落库的实体。Token 与 NFT 恰好一个非空。
type Request struct {
	SessionID string         `json:"session_id"`
	Token     *extract.Token `json:"token,omitempty"`
	NFT       *extract.NFT   `json:"nft,omitempty"`
}

// Handler 处理来自消息队列的落库请求。
type Handler func(ctx context.Context, req Request) error

// Producer 负责向队列投递落库请求。
type Producer interface {
	Publish(ctx context.Context, req Request) error
	Close() error
}

// Consumer 负责从队列中消费落库请求。
type Consumer interface {
	Consume(ctx context.Context, workerCount int, handler Handler) error
	Close() error
}

// Queue 同时具备生产者与消费者能力。
type Queue interface {
	Producer
	Consumer
}

// Store 抽象实体的持久化接口，由 MySQL 仓库或内存实现提供。
type Store interface {
	SaveToken(ctx context.Context, sessionID string, token *extract.Token) error
	SaveNFT(ctx context.Context, sessionID string, nft *extract.NFT) error
	Close() error
}
