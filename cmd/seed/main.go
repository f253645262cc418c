package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-flashcards-api/internal/core/config"
	"go-flashcards-api/internal/core/database"
	"go-flashcards-api/internal/core/logger"
	"go-flashcards-api/internal/domain"
	"go-flashcards-api/internal/repo"
)

// 开发用：建表 + 灌一个演示账号和一套示例卡组
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver: cfg.DB.Driver, DSN: cfg.DB.DSN, LogLevel: cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&domain.User{}, &domain.Folder{}, &domain.CardSet{}, &domain.Tag{}, &domain.Card{},
	); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	ctx := context.Background()
	users := repo.NewUserRepo(db)
	folders := repo.NewFolderRepo(db)
	sets := repo.NewCardSetRepo(db)
	cards := repo.NewCardRepo(db)

	u, err := users.Create(ctx, "demo@example.com", "demo-password-123")
	if errors.Is(err, domain.ErrEmailTaken) {
		log.Info("demo user already present, nothing to do")
		return
	}
	if err != nil {
		log.Fatal("seed user", zap.Error(err))
	}

	f, err := folders.Create(ctx, u.ID, "Spanish", false)
	if err != nil {
		log.Fatal("seed folder", zap.Error(err))
	}

	desc := "Basic verbs for week one"
	s, err := sets.CreateInFolder(ctx, f.ID, u.ID, domain.CardSetCreate{
		Name:        "Verbs A1",
		Description: &desc,
		Tags:        []string{"verbs", "a1"},
	})
	if err != nil {
		log.Fatal("seed set", zap.Error(err))
	}

	for _, cd := range []domain.CardCreate{
		{Term: "correr", Definition: "to run"},
		{Term: "comer", Definition: "to eat", Example: "Quiero comer algo."},
		{Term: "hablar", Definition: "to speak", Translation: "говорить"},
	} {
		if _, err := cards.Create(ctx, s.ID, cd); err != nil {
			log.Fatal("seed card", zap.Error(err))
		}
	}

	log.Info("seed done",
		zap.Uint("user", u.ID), zap.Uint("folder", f.ID), zap.Uint("set", s.ID))
}
