package insighting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-pulse-api/internal/domain"
)

func TestIsActive(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		entityID string
		category domain.InsightCategory
		log      []*domain.ActionLogEntry
		expected bool
	}{
		{
			name:     "Log vazio mantém todo cliente ativo",
			entityID: "cliente@example.com",
			category: domain.InsightRisk,
			log:      nil,
			expected: true,
		},
		{
			name:     "Ação de contato não encerra o par",
			entityID: "cliente@example.com",
			category: domain.InsightRisk,
			log: []*domain.ActionLogEntry{
				{ClientID: "cliente@example.com", Category: domain.InsightRisk, Kind: domain.ActionContact, CreatedAt: base},
			},
			expected: true,
		},
		{
			name:     "Dismissed encerra o par exato",
			entityID: "cliente@example.com",
			category: domain.InsightRisk,
			log: []*domain.ActionLogEntry{
				{ClientID: "cliente@example.com", Category: domain.InsightRisk, Kind: domain.ActionDismissed, CreatedAt: base},
			},
			expected: false,
		},
		{
			name:     "Completed encerra o par exato",
			entityID: "cliente@example.com",
			category: domain.InsightOpportunity,
			log: []*domain.ActionLogEntry{
				{ClientID: "cliente@example.com", Category: domain.InsightOpportunity, Kind: domain.ActionCompleted, CreatedAt: base},
			},
			expected: false,
		},
		{
			name:     "Dismissed em risco não afeta a categoria de vendas",
			entityID: "cliente@example.com",
			category: domain.InsightSales,
			log: []*domain.ActionLogEntry{
				{ClientID: "cliente@example.com", Category: domain.InsightRisk, Kind: domain.ActionDismissed, CreatedAt: base},
			},
			expected: true,
		},
		{
			name:     "Dismissed de outro cliente não encerra",
			entityID: "cliente@example.com",
			category: domain.InsightRisk,
			log: []*domain.ActionLogEntry{
				{ClientID: "outro@example.com", Category: domain.InsightRisk, Kind: domain.ActionDismissed, CreatedAt: base},
			},
			expected: true,
		},
		{
			name:     "Contato posterior reabre um par encerrado",
			entityID: "cliente@example.com",
			category: domain.InsightRisk,
			log: []*domain.ActionLogEntry{
				{ClientID: "cliente@example.com", Category: domain.InsightRisk, Kind: domain.ActionDismissed, CreatedAt: base},
				{ClientID: "cliente@example.com", Category: domain.InsightRisk, Kind: domain.ActionContact, CreatedAt: base.Add(time.Hour)},
			},
			expected: true,
		},
		{
			name:     "A entrada mais recente decide mesmo fora de ordem no array",
			entityID: "cliente@example.com",
			category: domain.InsightRisk,
			log: []*domain.ActionLogEntry{
				{ClientID: "cliente@example.com", Category: domain.InsightRisk, Kind: domain.ActionDismissed, CreatedAt: base.Add(2 * time.Hour)},
				{ClientID: "cliente@example.com", Category: domain.InsightRisk, Kind: domain.ActionContact, CreatedAt: base},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsActive(tt.entityID, tt.category, tt.log))
		})
	}
}
