package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-pulse-api/infrastructure/repository"
	"github.com/vfg2006/customer-pulse-api/internal/api"
	"github.com/vfg2006/customer-pulse-api/internal/config"
	"github.com/vfg2006/customer-pulse-api/internal/scheduler"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/authenticating"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/insighting"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/journeying"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	feedbackRepo := repository.NewFeedbackRepository(pgConn)
	leadRepo := repository.NewLeadRepository(pgConn)
	actionLogRepo := repository.NewActionLogRepository(pgConn)
	snapshotRepo := repository.NewSatisfactionSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	journeyBuilder := journeying.NewService()
	insightService := insighting.NewService()

	// Inicializa o agendador de snapshot diário de satisfação
	snapshotService := scheduler.NewSatisfactionSnapshotService(
		feedbackRepo,
		actionLogRepo,
		snapshotRepo,
		journeyBuilder,
		cfg,
	)

	if err := snapshotService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshot de satisfação")
	} else {
		logrus.Info("Agendador de snapshot de satisfação iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		api.Repositories{
			Feedback: feedbackRepo,
			Lead:     leadRepo,
			Action:   actionLogRepo,
			Snapshot: snapshotRepo,
		},
		insightService,
		journeyBuilder,
		authenticator,
		snapshotService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
