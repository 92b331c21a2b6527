package config_test

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/coffeeshop/frontend-env/config"
)

var _ = Describe("Validate", func() {
	var cfg config.EnvironmentConfig

	BeforeEach(func() {
		cfg = config.MustGet(config.ModeDevelopment)
	})

	It("should accept the preset", func() {
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should accept https URLs without an explicit port", func() {
		cfg.APIServerURL = "https://api.example.com/v1"
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should key errors by JSON field name", func() {
		cfg.APIServerURL = ""
		cfg.Auth.ClientID = ""

		err := cfg.Validate()

		var errs validation.Errors
		Expect(errors.As(err, &errs)).To(BeTrue())
		Expect(errs).To(HaveKey("apiServerUrl"))
		Expect(errs).To(HaveKey("auth"))

		var authErrs validation.Errors
		Expect(errors.As(errs["auth"], &authErrs)).To(BeTrue())
		Expect(authErrs).To(HaveKey("clientId"))
	})

	DescribeTable("rejected values",
		func(mutate func(*config.EnvironmentConfig)) {
			mutate(&cfg)
			Expect(cfg.Validate()).NotTo(Succeed())
		},
		Entry("empty audience", func(c *config.EnvironmentConfig) { c.Auth.Audience = "" }),
		Entry("empty domain", func(c *config.EnvironmentConfig) { c.Auth.Domain = "" }),
		Entry("domain with a scheme", func(c *config.EnvironmentConfig) { c.Auth.Domain = "https://dev-vu.us.auth0.com" }),
		Entry("callback without scheme", func(c *config.EnvironmentConfig) { c.Auth.CallbackURL = "localhost:8100" }),
		Entry("callback with ftp scheme", func(c *config.EnvironmentConfig) { c.Auth.CallbackURL = "ftp://localhost:8100" }),
		Entry("api url without host", func(c *config.EnvironmentConfig) { c.APIServerURL = "http://" }),
		Entry("api url with bad escape", func(c *config.EnvironmentConfig) { c.APIServerURL = "http://127.0.0.1:5000/%zz" }),
		Entry("api url with a port but no host name", func(c *config.EnvironmentConfig) { c.APIServerURL = "http://:5000" }),
		Entry("api url with port out of range", func(c *config.EnvironmentConfig) { c.APIServerURL = "http://127.0.0.1:99999" }),
		Entry("callback with port out of range", func(c *config.EnvironmentConfig) { c.Auth.CallbackURL = "http://localhost:70000" }),
		Entry("whitespace client id", func(c *config.EnvironmentConfig) { c.Auth.ClientID = "   " }),
		Entry("whitespace audience", func(c *config.EnvironmentConfig) { c.Auth.Audience = "\t" }),
	)
})
