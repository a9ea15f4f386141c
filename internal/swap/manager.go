package swap

import (
	"context"
	"sync"

	xerrors "SonicChat/internal/errors"
	"SonicChat/internal/market"
)

// ErrNoPendingQuote 表示会话当前没有待确认的报价。
var ErrNoPendingQuote = xerrors.New(xerrors.CodeNotFound, "no pending swap quote")

// session 保存单个会话的兑换状态。锁保证报价槽位的读改写
// 原子性：同一会话的多个终端并发提交时，"至多一个待确认报价"
// 的不变量依然成立。
type session struct {
	mu    sync.Mutex
	quote *Quote
}

// Manager 按会话管理兑换协商的生命周期：报价、顶替、确认、取消。
// 跨会话之间没有共享状态，不同会话可以无协调地并发推进。
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	source   market.Source
	executor Executor
}

// NewManager 创建兑换管理器。
func NewManager(source market.Source, executor Executor) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		source:   source,
		executor: executor,
	}
}

func (m *Manager) sessionFor(sessionID string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{}
		m.sessions[sessionID] = s
	}
	return s
}

// Propose 根据用户消息生成一份新报价并挂起等待确认。
// 会话已有报价时直接顶替：旧报价被丢弃，新报价取而代之。
func (m *Manager) Propose(ctx context.Context, sessionID, text string) (Quote, error) {
	if m.source == nil {
		return Quote{}, xerrors.New(xerrors.CodeInitializationFailure, "未配置行情源")
	}
	fromToken, toToken := ParsePair(text)

	marketQuote, err := m.source.GetSwapQuote(ctx, fromToken, toToken)
	if err != nil {
		return Quote{}, xerrors.Wrap(xerrors.CodeQuoteFailure, err, "获取兑换报价失败")
	}

	quote := Quote{
		FromToken: fromToken,
		ToToken:   toToken,
		Rate:      marketQuote.Rate,
		Fees:      marketQuote.Fees,
		Slippage:  marketQuote.Slippage,
		Route:     marketQuote.Route,
	}

	s := m.sessionFor(sessionID)
	s.mu.Lock()
	s.quote = &quote
	s.mu.Unlock()
	return quote, nil
}

// Pending 返回会话当前挂起的报价。
func (m *Manager) Pending(sessionID string) (Quote, bool) {
	s := m.sessionFor(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quote == nil {
		return Quote{}, false
	}
	return *s.quote, true
}

// Confirm 确认并执行挂起的报价。无论执行成功与否，报价槽位
// 都会被清空，状态机回到空闲态，不会卡在执行中。
func (m *Manager) Confirm(ctx context.Context, sessionID string) (Quote, *ExecutionResult, error) {
	if m.executor == nil {
		return Quote{}, nil, xerrors.New(xerrors.CodeInitializationFailure, "未配置兑换执行器")
	}

	s := m.sessionFor(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quote == nil {
		return Quote{}, nil, ErrNoPendingQuote
	}
	quote := *s.quote
	s.quote = nil

	result, err := m.executor.Execute(ctx, quote)
	if err != nil {
		return quote, nil, xerrors.Wrap(xerrors.CodeSwapFailure, err, "兑换执行失败")
	}
	return quote, result, nil
}

// Cancel 取消挂起的报价。没有报价时返回 false。
func (m *Manager) Cancel(sessionID string) (Quote, bool) {
	s := m.sessionFor(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quote == nil {
		return Quote{}, false
	}
	quote := *s.quote
	s.quote = nil
	return quote, true
}
