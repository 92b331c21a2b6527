package main

import (
	"net/http"

	"github.com/coffeeshop/frontend-env/internal/handler"
)

func setupRouter(envHandler *handler.EnvironmentHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/environment.json", envHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return mux
}
