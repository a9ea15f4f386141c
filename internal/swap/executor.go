package swap

import (
	"context"
	"crypto/rand"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	xerrors "SonicChat/internal/errors"
)

// Executor 定义兑换执行的接口边界。生产实现可以对接真实链上
// 交易，simulated 实现用于当前设计与测试。
type Executor interface {
	Execute(ctx context.Context, quote Quote) (*ExecutionResult, error)
}

// SimulatedExecutor 模拟一次链上兑换：等待一段延迟，按报价
// 汇率换算金额，并合成一个 32 字节的交易哈希。
type SimulatedExecutor struct {
	delay time.Duration
}

// NewSimulatedExecutor 创建模拟执行器。delay 为零时立即完成。
func NewSimulatedExecutor(delay time.Duration) *SimulatedExecutor {
	return &SimulatedExecutor{delay: delay}
}

// defaultAmountSent 固定按 1 个代币计算兑换金额。
const defaultAmountSent = 1.0

// Execute 执行模拟兑换。延迟期间上下文取消会中断执行。
func (e *SimulatedExecutor) Execute(ctx context.Context, quote Quote) (*ExecutionResult, error) {
	if e.delay > 0 {
		timer := time.NewTimer(e.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, xerrors.Wrap(xerrors.CodeSwapFailure, ctx.Err(), "兑换执行被中断")
		case <-timer.C:
		}
	}

	txHash, err := randomTxHash()
	if err != nil {
		return nil, xerrors.Wrap(xerrors.CodeSwapFailure, err, "生成交易哈希失败")
	}

	feePaid, parseErr := strconv.ParseFloat(quote.Fees, 64)
	if parseErr != nil {
		feePaid = 0
	}

	return &ExecutionResult{
		Success:        true,
		TxHash:         txHash,
		AmountSent:     defaultAmountSent,
		AmountReceived: defaultAmountSent * quote.Rate,
		FeePaid:        feePaid,
	}, nil
}

// randomTxHash 合成一个 0x 前缀的 32 字节十六进制交易哈希。
func randomTxHash() (string, error) {
	var raw [common.HashLength]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return common.BytesToHash(raw[:]).Hex(), nil
}

var _ Executor = (*SimulatedExecutor)(nil)
