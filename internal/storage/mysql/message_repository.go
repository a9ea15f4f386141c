package mysql

import (
	"context"
	"database/sql"

	"SonicChat/internal/chat"
	xerrors "SonicChat/internal/errors"
)

// MessageRepository 使用 MySQL 保存会话消息。
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository 创建连接池并初始化消息表。
func NewMessageRepository(ctx context.Context, cfg Config) (*MessageRepository, error) {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	repo := &MessageRepository{db: db}
	if err := repo.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *MessageRepository) initSchema(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS messages (
        seq BIGINT NOT NULL AUTO_INCREMENT,
        id VARCHAR(64) NOT NULL,
        session_id VARCHAR(64) NOT NULL,
        role VARCHAR(16) NOT NULL,
        content TEXT NOT NULL,
        created_at BIGINT NOT NULL,
        PRIMARY KEY (seq),
        UNIQUE KEY uk_message_id (id),
        INDEX idx_session_seq (session_id, seq)
)`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return xerrors.Wrap(xerrors.CodeStorageFailure, err, "初始化 messages 表失败")
	}
	return nil
}

// Append 将消息追加到其会话的末尾。
func (r *MessageRepository) Append(ctx context.Context, msg *chat.Message) error {
	if msg == nil {
		return xerrors.New(xerrors.CodeInvalidArgument, "message 不能为空")
	}
	const stmt = `INSERT INTO messages (id, session_id, role, content, created_at)
        VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, stmt,
		msg.ID, msg.SessionID, msg.Role, msg.Content, msg.CreatedAt,
	); err != nil {
		return xerrors.Wrap(xerrors.CodeStorageFailure, err, "写入消息失败")
	}
	return nil
}

// History 按追加顺序返回会话的全部消息。
func (r *MessageRepository) History(ctx context.Context, sessionID string) ([]chat.Message, error) {
	const query = `SELECT id, session_id, role, content, created_at
        FROM messages WHERE session_id = ? ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeStorageFailure, err, "查询会话消息失败")
	}
	defer rows.Close()

	messages := make([]chat.Message, 0, 16)
	for rows.Next() {
		var msg chat.Message
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, xerrors.Wrap(xerrors.CodeStorageFailure, err, "解析会话消息失败")
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Wrap(xerrors.CodeStorageFailure, err, "遍历会话消息失败")
	}
	return messages, nil
}

// Close 关闭底层数据库连接。
func (r *MessageRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

var _ chat.Store = (*MessageRepository)(nil)
