package chat

import (
	"context"
	"errors"

	xerrors "SonicChat/internal/errors"
	"SonicChat/internal/extract"
	"SonicChat/internal/intent"
	"SonicChat/internal/llm"
	"SonicChat/internal/market"
	"SonicChat/internal/persist"
	"SonicChat/internal/stream"
	"SonicChat/internal/swap"
	"SonicChat/pkg/logger"
)

// defaultHistoryDepth 是传给模型的最大历史消息条数。
const defaultHistoryDepth = 10

// 各失败路径返回给用户的兜底文案。
const (
	generalFailureReply  = "Sorry, I encountered an error processing your request."
	quoteFailureReply    = "I'm sorry, I couldn't retrieve a swap quote at this time. Please try again later."
	noPendingSwapReply   = "There is no pending swap to confirm."
	noPendingCancelReply = "There is no pending swap to cancel."
)

// Service 是会话管道的编排器：
// 分类意图、路由到对应处理器、聚合回复并追加到消息存储。
type Service struct {
	store        Store
	source       market.Source
	swaps        *swap.Manager
	agent        llm.Client
	sink         persist.Producer
	historyDepth int
}

// Option 配置 Service 的可选行为。
type Option func(*Service)

// WithHistoryDepth 设置传给模型的最大历史消息条数。
func WithHistoryDepth(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyDepth = n
		}
	}
}

// WithEntitySink 设置实体落库请求的投递队列。为空时跳过落库。
func WithEntitySink(sink persist.Producer) Option {
	return func(s *Service) { s.sink = sink }
}

// NewService 创建会话管道服务。
func NewService(store Store, source market.Source, swaps *swap.Manager, agent llm.Client, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, xerrors.New(xerrors.CodeInvalidArgument, "message store is nil")
	}
	if source == nil {
		return nil, xerrors.New(xerrors.CodeInvalidArgument, "market source is nil")
	}
	if swaps == nil {
		return nil, xerrors.New(xerrors.CodeInvalidArgument, "swap manager is nil")
	}
	s := &Service{
		store:        store,
		source:       source,
		swaps:        swaps,
		agent:        agent,
		historyDepth: defaultHistoryDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// HandleUserMessage 处理一条用户消息并返回追加到会话的助手回复。
// 行情、报价与模型调用的失败都会落为面向用户的兜底文案，
// 只有参数非法或存储失败才返回错误。
func (s *Service) HandleUserMessage(ctx context.Context, sessionID, text string) (*Message, error) {
	if sessionID == "" {
		return nil, xerrors.New(xerrors.CodeInvalidArgument, "session id is empty")
	}
	userMsg := NewMessage(sessionID, RoleUser, text)
	if err := s.store.Append(ctx, userMsg); err != nil {
		return nil, xerrors.Wrap(xerrors.CodeStorageFailure, err, "append user message")
	}

	visible, imageURL := SplitImageSentinel(text)
	if imageURL != "" {
		logger.L().Debug("message carries image attachment",
			"session_id", sessionID, "image_url", imageURL)
	}

	var reply string
	detected := intent.Classify(visible)
	switch detected {
	case intent.PriceQuery:
		reply = s.handlePrice(ctx, sessionID, visible)
	case intent.SwapQuery:
		reply = s.handleSwap(ctx, sessionID, visible)
	default:
		reply = s.handleGeneral(ctx, sessionID, visible)
	}
	logger.L().Info("user message handled",
		"session_id", sessionID, "intent", string(detected))

	return s.appendAssistant(ctx, sessionID, reply)
}

// ConfirmSwap 执行当前会话挂起的兑换报价并追加结果消息。
func (s *Service) ConfirmSwap(ctx context.Context, sessionID string) (*Message, error) {
	if sessionID == "" {
		return nil, xerrors.New(xerrors.CodeInvalidArgument, "session id is empty")
	}
	quote, result, err := s.swaps.Confirm(ctx, sessionID)
	var reply string
	switch {
	case errors.Is(err, swap.ErrNoPendingQuote):
		reply = noPendingSwapReply
	case err != nil || result == nil || !result.Success:
		logger.L().Warn("swap execution failed", "session_id", sessionID, "error", err)
		reply = swap.FailureMessage()
	default:
		logger.Audit().Info("swap executed",
			"session_id", sessionID,
			"from_token", quote.FromToken,
			"to_token", quote.ToToken,
			"tx_hash", result.TxHash)
		reply = swap.SuccessMessage(quote, *result)
	}
	return s.appendAssistant(ctx, sessionID, reply)
}

// CancelSwap 丢弃当前会话挂起的兑换报价并追加取消消息。
func (s *Service) CancelSwap(ctx context.Context, sessionID string) (*Message, error) {
	if sessionID == "" {
		return nil, xerrors.New(xerrors.CodeInvalidArgument, "session id is empty")
	}
	reply := noPendingCancelReply
	if _, ok := s.swaps.Cancel(sessionID); ok {
		reply = swap.CancelMessage()
	}
	return s.appendAssistant(ctx, sessionID, reply)
}

// History 返回会话的全部消息。
func (s *Service) History(ctx context.Context, sessionID string) ([]Message, error) {
	if sessionID == "" {
		return nil, xerrors.New(xerrors.CodeInvalidArgument, "session id is empty")
	}
	return s.store.History(ctx, sessionID)
}

func (s *Service) handlePrice(ctx context.Context, sessionID, text string) string {
	symbol := ExtractSymbol(text)
	info, err := s.source.GetPrice(ctx, symbol)
	if err != nil {
		logger.L().Warn("price lookup failed",
			"session_id", sessionID, "symbol", symbol, "error", err)
		return priceFailureReply
	}
	return PriceReply(symbol, info)
}

func (s *Service) handleSwap(ctx context.Context, sessionID, text string) string {
	quote, err := s.swaps.Propose(ctx, sessionID, text)
	if err != nil {
		logger.L().Warn("swap quote failed",
			"session_id", sessionID, "error", err)
		return quoteFailureReply
	}
	return swap.QuoteMessage(quote)
}

func (s *Service) handleGeneral(ctx context.Context, sessionID, text string) string {
	if s.agent == nil {
		return "I'm here to help with token prices and swaps. What would you like to do?"
	}
	history, err := s.recentHistory(ctx, sessionID)
	if err != nil {
		logger.L().Warn("load history failed", "session_id", sessionID, "error", err)
	}
	chunks, err := s.agent.Stream(ctx, llm.Request{
		SessionID: sessionID,
		Message:   text,
		History:   history,
	})
	if err != nil {
		logger.L().Warn("llm request failed", "session_id", sessionID, "error", err)
		return generalFailureReply
	}
	return stream.Aggregate(chunks)
}

// recentHistory 返回当前用户消息之前最近的若干条历史消息。
func (s *Service) recentHistory(ctx context.Context, sessionID string) ([]llm.HistoryEntry, error) {
	msgs, err := s.store.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// 最后一条是刚追加的当前用户消息，不计入历史。
	if n := len(msgs); n > 0 {
		msgs = msgs[:n-1]
	}
	if len(msgs) > s.historyDepth {
		msgs = msgs[len(msgs)-s.historyDepth:]
	}
	entries := make([]llm.HistoryEntry, 0, len(msgs))
	for _, m := range msgs {
		content, _ := SplitImageSentinel(m.Content)
		entries = append(entries, llm.HistoryEntry{Role: m.Role, Content: content})
	}
	return entries, nil
}

func (s *Service) appendAssistant(ctx context.Context, sessionID, reply string) (*Message, error) {
	msg := NewMessage(sessionID, RoleAssistant, reply)
	if err := s.store.Append(ctx, msg); err != nil {
		return nil, xerrors.Wrap(xerrors.CodeStorageFailure, err, "append assistant message")
	}
	s.publishEntities(ctx, sessionID, reply)
	return msg, nil
}

// publishEntities 从助手回复中抽取实体并投递落库请求。
// 投递失败只记日志，不影响会话流程。
func (s *Service) publishEntities(ctx context.Context, sessionID, reply string) {
	if s.sink == nil {
		return
	}
	for _, entity := range extract.Extract(reply) {
		req := persist.Request{
			SessionID: sessionID,
			Token:     entity.Token,
			NFT:       entity.NFT,
		}
		if err := s.sink.Publish(ctx, req); err != nil {
			logger.L().Warn("publish entity failed",
				"session_id", sessionID, "error", err)
		}
	}
}
