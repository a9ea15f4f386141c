package mysql

import (
	"context"
	"database/sql"

	xerrors "SonicChat/internal/errors"
	"SonicChat/internal/extract"
	"SonicChat/internal/persist"
)

// EntityRepository 使用 MySQL 保存聊天中识别出的代币与 NFT。
// 以铸造地址为唯一键，重复写入按更新处理。
type EntityRepository struct {
	db *sql.DB
}

// NewEntityRepository 创建连接池并初始化实体表。
func NewEntityRepository(ctx context.Context, cfg Config) (*EntityRepository, error) {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	repo := &EntityRepository{db: db}
	if err := repo.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *EntityRepository) initSchema(ctx context.Context) error {
	const tokens = `CREATE TABLE IF NOT EXISTS tokens (
        id BIGINT AUTO_INCREMENT PRIMARY KEY,
        session_id VARCHAR(64) NOT NULL,
        name VARCHAR(255) NOT NULL,
        symbol VARCHAR(32) NOT NULL,
        mint_address VARCHAR(64) NOT NULL,
        description TEXT,
        metadata TEXT,
        price DOUBLE NOT NULL DEFAULT 0,
        market_cap DOUBLE NOT NULL DEFAULT 0,
        volume_24h DOUBLE NOT NULL DEFAULT 0,
        change_24h DOUBLE NOT NULL DEFAULT 0,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        UNIQUE KEY uk_token_mint (mint_address),
        INDEX idx_token_session (session_id)
)`
	const nfts = `CREATE TABLE IF NOT EXISTS nfts (
        id BIGINT AUTO_INCREMENT PRIMARY KEY,
        session_id VARCHAR(64) NOT NULL,
        name VARCHAR(255) NOT NULL,
        mint_address VARCHAR(64) NOT NULL,
        image_url VARCHAR(512) NOT NULL DEFAULT '',
        metadata TEXT,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        UNIQUE KEY uk_nft_mint (mint_address),
        INDEX idx_nft_session (session_id)
)`

	if _, err := r.db.ExecContext(ctx, tokens); err != nil {
		return xerrors.Wrap(xerrors.CodeStorageFailure, err, "初始化 tokens 表失败")
	}
	if _, err := r.db.ExecContext(ctx, nfts); err != nil {
		return xerrors.Wrap(xerrors.CodeStorageFailure, err, "初始化 nfts 表失败")
	}
	return nil
}

// SaveToken 写入或更新一条代币实体。
func (r *EntityRepository) SaveToken(ctx context.Context, sessionID string, token *extract.Token) error {
	if token == nil {
		return xerrors.New(xerrors.CodeInvalidArgument, "token 不能为空")
	}
	const stmt = `INSERT INTO tokens
        (session_id, name, symbol, mint_address, description, metadata, price, market_cap, volume_24h, change_24h)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
        name = VALUES(name), symbol = VALUES(symbol),
        description = VALUES(description), metadata = VALUES(metadata)`
	if _, err := r.db.ExecContext(ctx, stmt,
		sessionID,
		token.Name,
		token.Symbol,
		token.MintAddress,
		token.Description,
		token.Metadata,
		token.Price,
		token.MarketCap,
		token.Volume24h,
		token.Change24h,
	); err != nil {
		return xerrors.Wrap(xerrors.CodeStorageFailure, err, "写入代币实体失败")
	}
	return nil
}

// SaveNFT 写入或更新一条 NFT 实体。
func (r *EntityRepository) SaveNFT(ctx context.Context, sessionID string, nft *extract.NFT) error {
	if nft == nil {
		return xerrors.New(xerrors.CodeInvalidArgument, "nft 不能为空")
	}
	const stmt = `INSERT INTO nfts (session_id, name, mint_address, image_url, metadata)
        VALUES (?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
        name = VALUES(name), image_url = VALUES(image_url), metadata = VALUES(metadata)`
	if _, err := r.db.ExecContext(ctx, stmt,
		sessionID,
		nft.Name,
		nft.MintAddress,
		nft.ImageURL,
		nft.Metadata,
	); err != nil {
		return xerrors.Wrap(xerrors.CodeStorageFailure, err, "写入 NFT 实体失败")
	}
	return nil
}

// Close 关闭底层数据库连接。
func (r *EntityRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

var _ persist.Store = (*EntityRepository)(nil)
