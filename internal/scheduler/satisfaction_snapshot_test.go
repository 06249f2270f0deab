package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/customer-pulse-api/infrastructure/repository/mocks"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/journeying"
	"go.uber.org/mock/gomock"
)

func TestSatisfactionSnapshotService_buildSnapshot(t *testing.T) {
	referenceDate := time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)

	journeyBuilder := journeying.NewService()
	journeyBuilder.Now = func() time.Time { return referenceDate }

	tests := []struct {
		name     string
		setup    func(feedbackRepo *mocks.MockFeedbackRepository, actionLogRepo *mocks.MockActionLogRepository)
		wantErr  bool
		validate func(t *testing.T, snapshot *domain.SatisfactionSnapshot)
	}{
		{
			name: "Sem respostas - snapshot zerado",
			setup: func(feedbackRepo *mocks.MockFeedbackRepository, actionLogRepo *mocks.MockActionLogRepository) {
				feedbackRepo.EXPECT().List().Return([]*domain.FeedbackResponse{}, nil)
				actionLogRepo.EXPECT().List().Return([]*domain.ActionLogEntry{}, nil)
			},
			validate: func(t *testing.T, snapshot *domain.SatisfactionSnapshot) {
				assert.Equal(t, 0, snapshot.Index)
				assert.Equal(t, 0, snapshot.TotalResponses)
				assert.Equal(t, 0, snapshot.JourneysAtRisk)
			},
		},
		{
			name: "Respostas mistas - índice agregado e jornadas em risco",
			setup: func(feedbackRepo *mocks.MockFeedbackRepository, actionLogRepo *mocks.MockActionLogRepository) {
				feedbackRepo.EXPECT().List().Return([]*domain.FeedbackResponse{
					{
						ID:            "r1",
						CustomerEmail: "ana@exemplo.com",
						Score:         10,
						Date:          referenceDate.AddDate(0, 0, -20),
					},
					{
						ID:            "r2",
						CustomerEmail: "ana@exemplo.com",
						Score:         9,
						Date:          referenceDate.AddDate(0, 0, -2),
					},
					{
						ID:            "r3",
						CustomerEmail: "bruno@exemplo.com",
						Score:         3,
						Date:          referenceDate.AddDate(0, 0, -1),
					},
				}, nil)
				actionLogRepo.EXPECT().List().Return([]*domain.ActionLogEntry{}, nil)
			},
			validate: func(t *testing.T, snapshot *domain.SatisfactionSnapshot) {
				// 2 promotores, 1 detrator: (2-1)/3*100 = 33
				assert.Equal(t, 33, snapshot.Index)
				assert.Equal(t, 2, snapshot.Promoters)
				assert.Equal(t, 0, snapshot.Neutrals)
				assert.Equal(t, 1, snapshot.Detractors)
				assert.Equal(t, 3, snapshot.TotalResponses)
				// Bruno é detrator sem nenhum contato registrado
				assert.Equal(t, 1, snapshot.JourneysAtRisk)
			},
		},
		{
			name: "Falha no log de ações não interrompe o snapshot",
			setup: func(feedbackRepo *mocks.MockFeedbackRepository, actionLogRepo *mocks.MockActionLogRepository) {
				feedbackRepo.EXPECT().List().Return([]*domain.FeedbackResponse{
					{
						ID:            "r1",
						CustomerEmail: "ana@exemplo.com",
						Score:         8,
						Date:          referenceDate.AddDate(0, 0, -3),
					},
				}, nil)
				actionLogRepo.EXPECT().List().Return(nil, errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, snapshot *domain.SatisfactionSnapshot) {
				assert.Equal(t, 0, snapshot.Index)
				assert.Equal(t, 1, snapshot.Neutrals)
				assert.Equal(t, 1, snapshot.TotalResponses)
			},
		},
		{
			name: "Falha ao buscar respostas interrompe o snapshot",
			setup: func(feedbackRepo *mocks.MockFeedbackRepository, actionLogRepo *mocks.MockActionLogRepository) {
				feedbackRepo.EXPECT().List().Return(nil, errors.New("conexão recusada"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFeedbackRepo := mocks.NewMockFeedbackRepository(ctrl)
			mockActionLogRepo := mocks.NewMockActionLogRepository(ctrl)

			service := &SatisfactionSnapshotService{
				feedbackRepo:   mockFeedbackRepo,
				actionLogRepo:  mockActionLogRepo,
				journeyBuilder: journeyBuilder,
			}

			tt.setup(mockFeedbackRepo, mockActionLogRepo)

			snapshot, err := service.buildSnapshot(referenceDate)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, snapshot)
			assert.True(t, snapshot.Date.Equal(referenceDate))
			tt.validate(t, snapshot)
		})
	}
}

func TestSatisfactionSnapshotService_UpdateSatisfactionSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFeedbackRepo := mocks.NewMockFeedbackRepository(ctrl)
	mockActionLogRepo := mocks.NewMockActionLogRepository(ctrl)
	mockSnapshotRepo := mocks.NewMockSatisfactionSnapshotRepository(ctrl)

	mockFeedbackRepo.EXPECT().List().Return([]*domain.FeedbackResponse{
		{ID: "r1", CustomerEmail: "ana@exemplo.com", Score: 10, Date: time.Now().AddDate(0, 0, -1)},
	}, nil)
	mockActionLogRepo.EXPECT().List().Return([]*domain.ActionLogEntry{}, nil)

	var saved *domain.SatisfactionSnapshot
	mockSnapshotRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		DoAndReturn(func(snapshot *domain.SatisfactionSnapshot) error {
			saved = snapshot
			return nil
		})
	mockSnapshotRepo.EXPECT().DeleteOlderThan(365).Return(int64(0), nil)

	service := &SatisfactionSnapshotService{
		feedbackRepo:   mockFeedbackRepo,
		actionLogRepo:  mockActionLogRepo,
		snapshotRepo:   mockSnapshotRepo,
		journeyBuilder: journeying.NewService(),
		config: SatisfactionSnapshotConfig{
			RetentionDays: 365,
		},
	}

	err := service.UpdateSatisfactionSnapshot()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 100, saved.Index)
	assert.Equal(t, 1, saved.TotalResponses)

	status := service.GetStatus()
	assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}
