// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-pulse-api/infrastructure/repository"
	"github.com/vfg2006/customer-pulse-api/internal/config"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/journeying"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/scoring"
)

type SatisfactionSnapshotConfig struct {
	CronSchedule  string
	RetentionDays int
	SyncEnabled   bool
}

type SatisfactionSnapshotService struct {
	scheduler           *gocron.Scheduler
	feedbackRepo        repository.FeedbackRepository
	actionLogRepo       repository.ActionLogRepository
	snapshotRepo        repository.SatisfactionSnapshotRepository
	journeyBuilder      journeying.JourneyBuilder
	config              SatisfactionSnapshotConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewSatisfactionSnapshotService(
	feedbackRepo repository.FeedbackRepository,
	actionLogRepo repository.ActionLogRepository,
	snapshotRepo repository.SatisfactionSnapshotRepository,
	journeyBuilder journeying.JourneyBuilder,
	cfg *config.Config,
) *SatisfactionSnapshotService {
	snapshotConfig := SatisfactionSnapshotConfig{
		CronSchedule:  cfg.SatisfactionSync.CronSchedule,  // Default: 3h da manhã todos os dias
		RetentionDays: cfg.SatisfactionSync.RetentionDays, // Default: 365 dias de histórico
		SyncEnabled:   cfg.SatisfactionSync.Enabled,       // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": snapshotConfig.CronSchedule,
	}).Info("Configuração do agendador de snapshot de satisfação carregada")

	return &SatisfactionSnapshotService{
		scheduler:      scheduler,
		feedbackRepo:   feedbackRepo,
		actionLogRepo:  actionLogRepo,
		snapshotRepo:   snapshotRepo,
		journeyBuilder: journeyBuilder,
		config:         snapshotConfig,
	}
}

func (s *SatisfactionSnapshotService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de snapshot de satisfação desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de snapshot de satisfação")

	// Agendar o snapshot diário de satisfação
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateSatisfactionSnapshot(); err != nil {
			logrus.WithError(err).Error("Erro na atualização do snapshot de satisfação")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshot de satisfação: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do snapshot de satisfação")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SatisfactionSnapshotService) UpdateSatisfactionSnapshot() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Snapshot de satisfação já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando atualização do snapshot de satisfação")

	snapshot, err := s.buildSnapshot(time.Now())
	if err != nil {
		logrus.WithError(err).Error("Erro ao montar snapshot de satisfação")
		return err
	}

	if err := s.snapshotRepo.SaveOrUpdate(snapshot); err != nil {
		logrus.WithError(err).Error("Erro ao salvar snapshot de satisfação")
		return err
	}

	s.cleanupOldSnapshots()

	logrus.WithFields(logrus.Fields{
		"date":             snapshot.Date.Format(time.DateOnly),
		"index":            snapshot.Index,
		"total_responses":  snapshot.TotalResponses,
		"journeys_at_risk": snapshot.JourneysAtRisk,
	}).Info("Atualização do snapshot de satisfação concluída")

	return nil
}

// buildSnapshot calcula o índice agregado e as jornadas em risco sobre todas
// as respostas registradas até a data informada
func (s *SatisfactionSnapshotService) buildSnapshot(date time.Time) (*domain.SatisfactionSnapshot, error) {
	responses, err := s.feedbackRepo.List()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar respostas: %w", err)
	}

	summary := scoring.Summarize(responses)

	// O log de ações influencia o cálculo de dias sem contato das jornadas.
	// Falha na busca não interrompe o snapshot, apenas zera esse dado.
	actions, err := s.actionLogRepo.List()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao buscar log de ações, snapshot seguirá sem ações")
		actions = nil
	}

	journeys := s.journeyBuilder.BuildJourneys(responses, actions)
	journeysAtRisk := 0
	for _, journey := range journeys {
		if journey.NeedsAttention {
			journeysAtRisk++
		}
	}

	return &domain.SatisfactionSnapshot{
		Date:           date,
		Index:          summary.Index,
		Promoters:      summary.Promoters,
		Neutrals:       summary.Neutrals,
		Detractors:     summary.Detractors,
		TotalResponses: summary.Total,
		JourneysAtRisk: journeysAtRisk,
	}, nil
}

func (s *SatisfactionSnapshotService) cleanupOldSnapshots() {
	if s.config.RetentionDays <= 0 {
		return
	}

	deleted, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover snapshots antigos")
		return
	}

	if deleted > 0 {
		logrus.WithField("deleted", deleted).Info("Snapshots antigos removidos")
	}
}

// TriggerManualSync inicia manualmente uma atualização do snapshot de satisfação
func (s *SatisfactionSnapshotService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot de satisfação já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do snapshot de satisfação")
	go s.UpdateSatisfactionSnapshot()
}

// GetStatus retorna o status atual do agendador
func (s *SatisfactionSnapshotService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_days":         s.config.RetentionDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
