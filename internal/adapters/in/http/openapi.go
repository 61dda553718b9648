package http

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"

	"backoffice/internal/pkg/errs"
)

//go:embed api/openapi.yml
var openapiContract []byte

// NewContractValidator loads the committed OpenAPI contract and returns a
// middleware that rejects requests the contract does not allow before they
// reach a handler. Requests for paths outside the contract pass through
// untouched.
func NewContractValidator() (echo.MiddlewareFunc, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openapiContract)
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}

	if !strings.HasPrefix(doc.OpenAPI, "3") {
		return nil, errs.NewVersionIsInvalidError(
			"openapi contract",
			fmt.Errorf("expected an OpenAPI 3 document, got %q", doc.OpenAPI),
		)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("index openapi contract: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			request := ctx.Request()

			route, pathParams, err := router.FindRoute(request)
			if err != nil {
				return next(ctx)
			}

			// ValidateRequest consumes the body and puts an equivalent
			// reader back on the request, so handlers can still bind it.
			err = openapi3filter.ValidateRequest(request.Context(), &openapi3filter.RequestValidationInput{
				Request:    request,
				PathParams: pathParams,
				Route:      route,
			})
			if err != nil {
				return ctx.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Message: "Request does not match the API contract: " + err.Error(),
				})
			}

			return next(ctx)
		}
	}, nil
}
