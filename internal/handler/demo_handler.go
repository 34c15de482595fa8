package handler

import (
	"net/http"

	"github.com/krizhnx/internyx/internal/model"
	"github.com/krizhnx/internyx/pkg/logger"
	"github.com/krizhnx/internyx/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// sampleApplications is the demo dataset inserted by SeedDemoData
var sampleApplications = []model.Application{
	{
		CompanyName: "Google", Role: "Software Engineering Intern",
		Status: model.StatusApplied, Location: model.LocationOnSite,
		LocationPlace: "Mountain View, CA",
		AppliedDate:   "2024-01-15", Deadline: "2024-02-15",
		Salary: "$8000/month",
		Notes:  "Applied through university portal. Strong referral from alumni.",
		Tags:   []string{"Dream Company", "Tech"},
	},
	{
		CompanyName: "Microsoft", Role: "Cloud Solutions Intern",
		Status: model.StatusInterviewing, Location: model.LocationOnSite,
		LocationPlace: "Redmond, WA",
		AppliedDate:   "2024-01-10", Deadline: "2024-02-10",
		Salary: "$7500/month",
		Notes:  "First round interview scheduled for next week.",
		Tags:   []string{"Tech", "Priority"},
	},
	{
		CompanyName: "Netflix", Role: "Data Science Intern",
		Status: model.StatusRejected, Location: model.LocationRemote,
		LocationPlace: "Los Gatos, CA",
		AppliedDate:   "2024-01-05", Deadline: "2024-01-25",
		Salary: "$9000/month",
		Notes:  "Rejected after technical interview. Need to improve ML skills.",
		Tags:   []string{"Dream Company"},
	},
	{
		CompanyName: "Stripe", Role: "Frontend Engineering Intern",
		Status: model.StatusOffer, Location: model.LocationOnSite,
		LocationPlace: "San Francisco, CA",
		AppliedDate:   "2024-01-20", Deadline: "2024-02-20",
		Salary: "$8500/month",
		Notes:  "Received offer! Need to respond by end of week.",
		Tags:   []string{"Tech", "Startup"},
	},
	{
		CompanyName: "Airbnb", Role: "Product Management Intern",
		Status: model.StatusApplied, Location: model.LocationHybrid,
		LocationPlace: "San Francisco, CA",
		AppliedDate:   "2024-01-18", Deadline: "2024-02-18",
		Salary: "$7000/month",
		Notes:  "Applied through LinkedIn. Waiting for response.",
		Tags:   []string{"Startup"},
	},
	{
		CompanyName: "Goldman Sachs", Role: "Quantitative Trading Intern",
		Status: model.StatusInterviewing, Location: model.LocationOnSite,
		LocationPlace: "New York, NY",
		AppliedDate:   "2024-01-12", Deadline: "2024-02-12",
		Salary: "$10000/month",
		Notes:  "Second round interview this Friday.",
		Tags:   []string{"Finance", "Priority"},
	},
}

// SeedDemoData inserts the sample applications for the owner
func (h *Handler) SeedDemoData(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordApplicationOperation("seed_demo")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	for _, sample := range sampleApplications {
		app := sample
		if err := s.Create(c.Request().Context(), &app); err != nil {
			return respondError(c, log, err)
		}
	}

	log.Info("Demo applications seeded", zap.Int("count", len(sampleApplications)))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "demo applications added",
		"count":   len(sampleApplications),
	})
}
