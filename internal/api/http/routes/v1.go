package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	projectshttp "github.com/americano/projectsync/internal/projects/http"
	"github.com/americano/projectsync/internal/projects/repository"
	"github.com/americano/projectsync/internal/projects/service"
)

// APIDeps are the dependencies of the resource routes.
type APIDeps struct {
	Store  repository.Store
	Logger *zap.Logger
}

// RegisterAPI mounts the resource routes under /api.
func RegisterAPI(r gin.IRouter, dep APIDeps) {
	logger := dep.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	api := r.Group("/api")

	projectSvc := service.NewProjectService(dep.Store, logger.Named("projects"))
	projectsGroup := api.Group("/projects")
	projectshttp.New(projectSvc, logger).Register(projectsGroup)
}
