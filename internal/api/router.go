package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "csv-manager/docs"
	"csv-manager/internal/api/handler"
	"csv-manager/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.POST("/api/v1/users", h.RegisterUser)
	r.POST("/api/v1/teams", h.CreateTeam)
	r.POST("/api/v1/teams/*/members", h.AddTeamMember)
	r.GET("/api/v1/activity", h.GetActivity)

	r.POST("/api/v1/datasets/upload", h.UploadDataset)
	r.GET("/api/v1/datasets", h.ListDatasets)
	r.GET("/api/v1/datasets/*/rows", h.ListRows)
	r.PATCH("/api/v1/datasets/*/rows", h.UpdateCell)
	r.GET("/api/v1/datasets/*/summary", h.GetSummary)
	r.GET("/api/v1/datasets/*/chart", h.GetChart)
	r.GET("/api/v1/datasets/*/export", h.ExportDataset)
	r.POST("/api/v1/datasets/*/share", h.ShareDataset)
	r.GET("/api/v1/datasets/*", h.GetDataset)
	r.PATCH("/api/v1/datasets/*", h.RenameDataset)
	r.DELETE("/api/v1/datasets/*", h.DeleteDataset)

	r.GET("/swagger/*", func(w http.ResponseWriter, req *http.Request) {
		httpSwagger.WrapHandler(w, req)
	})
}
