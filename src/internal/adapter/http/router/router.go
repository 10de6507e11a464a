package router

import "net/http"

type OperationsRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, adminMiddleware func(http.Handler) http.Handler)
}

type CustomerRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, adminMiddleware func(http.Handler) http.Handler)
}

func New(
	operationsController OperationsRouteRegistrar,
	customerController CustomerRouteRegistrar,
	adminMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	if operationsController != nil {
		operationsController.RegisterRoutes(mux, adminMiddleware)
	}
	if customerController != nil {
		customerController.RegisterRoutes(mux, adminMiddleware)
	}

	return mux
}
