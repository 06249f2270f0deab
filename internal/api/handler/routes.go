package handler

import (
	"net/http"

	"github.com/vfg2006/customer-pulse-api/infrastructure/repository"
	"github.com/vfg2006/customer-pulse-api/internal/api/handler/router"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/authenticating"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/insighting"
	"github.com/vfg2006/customer-pulse-api/internal/usecases/journeying"
	"github.com/vfg2006/customer-pulse-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func FeedbackResponses(feedbackRepo repository.FeedbackRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/responses",
			Method:      http.MethodPost,
			Handler:     CreateFeedbackResponse(feedbackRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/responses",
			Method:      http.MethodGet,
			Handler:     ListFeedbackResponses(feedbackRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/responses/:id/notes",
			Method:      http.MethodPost,
			Handler:     AddFeedbackNote(feedbackRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Leads(leadRepo repository.LeadRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/leads",
			Method:      http.MethodPost,
			Handler:     CreateLead(leadRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads",
			Method:      http.MethodGet,
			Handler:     ListLeads(leadRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateLeadStatus(leadRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:id/value",
			Method:      http.MethodPut,
			Handler:     UpdateLeadValue(leadRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Actions(actionLogRepo repository.ActionLogRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/actions",
			Method:      http.MethodPost,
			Handler:     RegisterAction(actionLogRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/actions",
			Method:      http.MethodGet,
			Handler:     ListActions(actionLogRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Journeys(
	builder journeying.JourneyBuilder,
	feedbackRepo repository.FeedbackRepository,
	actionLogRepo repository.ActionLogRepository,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/journeys",
			Method:      http.MethodGet,
			Handler:     GetCustomerJourneys(builder, feedbackRepo, actionLogRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Insights(
	service insighting.Insighter,
	feedbackRepo repository.FeedbackRepository,
	leadRepo repository.LeadRepository,
	actionLogRepo repository.ActionLogRepository,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/insights",
			Method:      http.MethodGet,
			Handler:     GetActionInsights(service, feedbackRepo, leadRepo, actionLogRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Satisfaction(
	feedbackRepo repository.FeedbackRepository,
	snapshotRepo repository.SatisfactionSnapshotRepository,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/satisfaction",
			Method:      http.MethodGet,
			Handler:     GetSatisfactionSummary(feedbackRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/satisfaction/history",
			Method:      http.MethodGet,
			Handler:     GetSatisfactionHistory(snapshotRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
