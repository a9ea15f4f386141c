package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"SonicChat/internal/api"
	"SonicChat/internal/chat"
	"SonicChat/internal/config"
	"SonicChat/internal/llm"
	"SonicChat/internal/llm/openai"
	"SonicChat/internal/market"
	"SonicChat/internal/observability/alerting"
	"SonicChat/internal/persist"
	"SonicChat/internal/storage/mysql"
	"SonicChat/internal/swap"
	"SonicChat/pkg/logger"
)

// main 是 SonicChat 守护进程的入口。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("sonicchatd 运行失败: %v", err)
	}
}

func run(ctx context.Context) error {
	configPath := os.Getenv("SONICCHAT_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("configs", "sonicchat.json")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: cfg.Logging.OutputPaths,
		Audit: logger.AuditConfig{
			Enabled:    cfg.Logging.Audit.Enabled,
			Path:       cfg.Logging.Audit.Path,
			MaxSizeMB:  cfg.Logging.Audit.MaxSizeMB,
			MaxBackups: cfg.Logging.Audit.MaxBackups,
			MaxAgeDays: cfg.Logging.Audit.MaxAgeDays,
		},
	}); err != nil {
		return err
	}
	defer logger.Close()

	// 初始化行情数据源。
	var source market.Source
	if cfg.Market.TablePath != "" {
		loaded, err := market.LoadStaticSource(cfg.Market.TablePath, cfg.Market.Seed)
		if err != nil {
			return err
		}
		source = loaded
	} else {
		source = market.NewStaticSource(cfg.Market.Seed)
	}

	// 初始化消息存储。
	var messageStore chat.Store
	switch cfg.Storage.Driver {
	case "", "memory":
		messageStore = chat.NewMemoryStore()
	case "mysql":
		repo, err := mysql.NewMessageRepository(ctx, mysql.Config{
			DSN:             cfg.Storage.MySQL.DSN,
			MaxOpenConns:    cfg.Storage.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.MySQL.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Storage.MySQL.ConnMaxLifetimeMS) * time.Millisecond,
		})
		if err != nil {
			return err
		}
		messageStore = repo
	default:
		return fmt.Errorf("未知的存储驱动: %s", cfg.Storage.Driver)
	}
	defer func() {
		if err := messageStore.Close(); err != nil {
			logger.L().Warn("关闭消息存储失败", "error", err)
		}
	}()

	// 初始化实体落库的队列与存储。
	entityQueue, err := createEntityQueue(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := entityQueue.Close(); err != nil {
			logger.L().Warn("关闭落库队列失败", "error", err)
		}
	}()

	var entityStore persist.Store
	switch cfg.Storage.Driver {
	case "", "memory":
		entityStore = persist.NewMemoryStore()
	case "mysql":
		repo, err := mysql.NewEntityRepository(ctx, mysql.Config{
			DSN:             cfg.Storage.MySQL.DSN,
			MaxOpenConns:    cfg.Storage.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.MySQL.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Storage.MySQL.ConnMaxLifetimeMS) * time.Millisecond,
		})
		if err != nil {
			return err
		}
		entityStore = repo
	}
	defer func() {
		if err := entityStore.Close(); err != nil {
			logger.L().Warn("关闭实体存储失败", "error", err)
		}
	}()

	processor, err := persist.NewProcessor(entityQueue, entityStore, cfg.Persist.Workers,
		persist.WithNotifier(alerting.LogNotifier{}),
	)
	if err != nil {
		return err
	}

	processorCtx, processorCancel := context.WithCancel(ctx)
	defer processorCancel()
	go func() {
		if err := processor.Run(processorCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.L().Error("落库处理器异常退出", "error", err)
		}
	}()

	// 初始化大模型客户端。general chat 降级时允许为空。
	agent, err := createLLMClient(cfg)
	if err != nil {
		return err
	}

	manager := swap.NewManager(source,
		swap.NewSimulatedExecutor(time.Duration(cfg.Swap.ExecutionDelayMS)*time.Millisecond))

	svc, err := chat.NewService(messageStore, source, manager, agent,
		chat.WithHistoryDepth(cfg.Runtime.HistoryDepth),
		chat.WithEntitySink(entityQueue),
	)
	if err != nil {
		return err
	}

	server := api.NewServer(cfg.Server.Address, svc, source,
		time.Duration(cfg.Server.ShutdownTimeoutMS)*time.Millisecond)

	logger.L().Info("sonicchatd 启动", "address", cfg.Server.Address)
	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func createEntityQueue(cfg *config.Config) (persist.Queue, error) {
	switch cfg.Persist.Driver {
	case "", "memory":
		return persist.NewMemoryQueue(1024), nil
	case "redis":
		return persist.NewRedisQueue(persist.RedisQueueConfig{
			Address:   cfg.Persist.Redis.Address,
			Password:  cfg.Persist.Redis.Password,
			DB:        cfg.Persist.Redis.DB,
			Queue:     cfg.Persist.Redis.Queue,
			BlockWait: time.Duration(cfg.Persist.Redis.BlockWaitMS) * time.Millisecond,
		})
	case "rabbitmq":
		return persist.NewRabbitMQQueue(persist.RabbitMQConfig{
			URL:      cfg.Persist.RabbitMQ.URL,
			Queue:    cfg.Persist.RabbitMQ.Queue,
			Prefetch: cfg.Persist.RabbitMQ.Prefetch,
			Durable:  cfg.Persist.RabbitMQ.Durable,
		})
	default:
		return nil, fmt.Errorf("未知的队列驱动: %s", cfg.Persist.Driver)
	}
}

func createLLMClient(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case "none":
		return nil, nil
	case "", "openai":
		apiKey := strings.TrimSpace(cfg.LLM.OpenAI.APIKey)
		if apiKey == "" && cfg.LLM.OpenAI.APIKeyEnv != "" {
			apiKey = strings.TrimSpace(os.Getenv(cfg.LLM.OpenAI.APIKeyEnv))
		}
		if apiKey == "" {
			logger.L().Warn("未配置 OpenAI api_key，general chat 将使用固定回复")
			return nil, nil
		}
		return openai.NewClient(openai.Config{
			APIKey:  apiKey,
			BaseURL: cfg.LLM.OpenAI.BaseURL,
			Model:   cfg.LLM.OpenAI.Model,
			Timeout: time.Duration(cfg.LLM.OpenAI.TimeoutMS) * time.Millisecond,
		})
	default:
		return nil, fmt.Errorf("未知的大模型 provider: %s", cfg.LLM.Provider)
	}
}
