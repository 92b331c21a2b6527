package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/coffeeshop/frontend-env/config"
	"github.com/coffeeshop/frontend-env/internal/handler"
)

var _ = Describe("Handler", func() {
	var (
		h   *handler.EnvironmentHandler
		cfg config.EnvironmentConfig
		log *slog.Logger
	)

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
		cfg = config.MustGet(config.ModeDevelopment)

		var err error
		h, err = handler.NewEnvironmentHandler(log, config.ModeDevelopment, cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("ServeHTTP", func() {
		It("should return the environment as JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/environment.json", nil)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(w.Header().Get("Cache-Control")).To(Equal("no-store"))
			Expect(w.Body.String()).To(MatchJSON(`{
				"production": false,
				"apiServerUrl": "http://127.0.0.1:5000",
				"auth": {
					"domain": "dev-vu.us.auth0.com",
					"audience": "coffee-shop-backend",
					"clientId": "8JbmI4rqh4lyHQ7k1D0Zm5gRhjOGWuFQ",
					"callbackUrl": "http://localhost:8100"
				}
			}`))
		})

		It("should round-trip into the same record", func() {
			req := httptest.NewRequest(http.MethodGet, "/environment.json", nil)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			var got config.EnvironmentConfig
			Expect(json.Unmarshal(w.Body.Bytes(), &got)).To(Succeed())
			Expect(got).To(Equal(cfg))
		})

		It("should send headers only for HEAD", func() {
			req := httptest.NewRequest(http.MethodHead, "/environment.json", nil)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.Len()).To(BeZero())
		})

		It("should reject writes", func() {
			req := httptest.NewRequest(http.MethodPost, "/environment.json", nil)
			req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusMethodNotAllowed))
			Expect(w.Header().Get("Allow")).To(Equal("GET, HEAD"))
		})
	})
})
