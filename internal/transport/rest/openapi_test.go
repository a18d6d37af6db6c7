package rest_test

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("is a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents every mounted API operation", func() {
		expected := map[string][]string{
			"/auth/signup":                {http.MethodPost},
			"/auth/login":                 {http.MethodPost},
			"/auth/me":                    {http.MethodGet},
			"/tenant":                     {http.MethodGet, http.MethodPut},
			"/users":                      {http.MethodGet, http.MethodPost},
			"/users/{id}":                 {http.MethodPut, http.MethodDelete},
			"/roles":                      {http.MethodGet, http.MethodPost},
			"/roles/{id}":                 {http.MethodPut, http.MethodDelete},
			"/categories":                 {http.MethodGet, http.MethodPost},
			"/categories/{id}":            {http.MethodPut, http.MethodDelete},
			"/product_status":             {http.MethodGet, http.MethodPost},
			"/product_status/{id}":        {http.MethodPut, http.MethodDelete},
			"/products":                   {http.MethodGet, http.MethodPost},
			"/products/bulk":              {http.MethodPut},
			"/products/{id}":              {http.MethodGet, http.MethodPut, http.MethodDelete},
			"/docs":                       {http.MethodGet, http.MethodPost},
			"/docs/{id}":                  {http.MethodPut, http.MethodDelete},
			"/docs/{id}/restore":          {http.MethodPost},
			"/docs/folders":               {http.MethodGet, http.MethodPost},
			"/docs/folders/{id}":          {http.MethodPut, http.MethodDelete},
			"/qrcode":                     {http.MethodGet, http.MethodPost},
			"/qrcode/scan/{tenantID}":     {http.MethodGet},
			"/notifications":              {http.MethodGet},
			"/notifications/read":         {http.MethodPut},
			"/dashboard":                  {http.MethodGet},
			"/activity-logs":              {http.MethodGet},
			"/trackbot/chats":             {http.MethodGet, http.MethodPost},
			"/trackbot/chats/{id}/messages": {http.MethodGet, http.MethodPost},
			"/upload/document":            {http.MethodPost},
			"/upload/product-image":       {http.MethodPost},
		}

		for path, methods := range expected {
			item := doc.Paths.Find(path)
			Expect(item).NotTo(BeNil(), "missing path %s", path)
			for _, method := range methods {
				Expect(item.GetOperation(method)).NotTo(BeNil(),
					"missing %s %s", method, path)
			}
		}
	})

	It("keeps the public endpoints unauthenticated", func() {
		for _, path := range []string{"/auth/signup", "/auth/login", "/qrcode/scan/{tenantID}", "/health"} {
			item := doc.Paths.Find(path)
			Expect(item).NotTo(BeNil(), "missing path %s", path)
			for _, op := range item.Operations() {
				Expect(op.Security).NotTo(BeNil(), "expected explicit security override on %s", path)
				Expect(*op.Security).To(BeEmpty(), "expected empty security on %s", path)
			}
		}
	})
})
