package server

import (
	"context"
	"net/http"

	"batchcalc/internal/handlers"
	applog "batchcalc/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	routes := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/healthz", handlers.Health},
		{"/api/components", handlers.Components},
		{"/api/chemicals", handlers.Chemicals},
		{"/api/batch/masses", handlers.BatchMasses},
		{"/api/batch/moles", handlers.BatchMoles},
		{"/api/batch/matrix", handlers.BatchMatrix},
		{"/api/rescale", handlers.Rescale},
		{"/api/formula/parse", handlers.ParseFormula},
		{"/api/molwt", handlers.MolecularWeight},
	}
	for _, route := range routes {
		mux.HandleFunc(route.path, route.handler)
		applog.Debug(context.Background(), "route registered", "path", route.path)
	}
	return mux
}
