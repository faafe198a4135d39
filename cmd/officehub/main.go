package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"officeHub/internal/app"
	"officeHub/internal/config"
	"officeHub/internal/logger"
	"officeHub/internal/models/user"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("загрузка конфига: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	defer application.Shutdown()

	if err := application.Init(ctx); err != nil {
		return err
	}

	summary := application.Dashboard().Summary(currentViewer(application))
	logger.Info("Хранилища готовы",
		zap.Int("projects", summary.TotalProjects),
		zap.Int("completed_projects", summary.CompletedProjects),
		zap.Int("unread_messages", summary.UnreadMessages),
	)

	application.Run(ctx)
	logger.Info("Получен сигнал завершения")
	return nil
}

// currentViewer - пользователь сохранённой сессии либо пустой, если вход не выполнен.
func currentViewer(a *app.App) user.User {
	u, _ := a.Users().CurrentUser()
	return u
}
