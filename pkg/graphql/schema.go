// Package graphql serves a graphql-go schema over HTTP.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/bcama/linqlab/pkg/logger"
	"github.com/bcama/linqlab/pkg/response"
)

// NewSchema creates a new GraphQL schema from a provided RootQuery
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// maxBody bounds the request document.
const maxBody = 1 << 20

// Handler executes POSTed queries against schema. Execution errors are
// reported in the result's "errors" list with status 200; only an unreadable
// body is a 400.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
			response.BadRequest(w, "invalid GraphQL request body", map[string]string{"body": err.Error()})
			return
		}
		if req.Query == "" {
			response.BadRequest(w, "invalid GraphQL request body", map[string]string{"query": "is required"})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        r.Context(),
		})
		if result.HasErrors() {
			logger.WithCtx(r.Context()).Warn("graphql: query returned errors",
				"operation", req.OperationName, "errors", len(result.Errors))
		}

		response.JSON(w, http.StatusOK, result)
	}
}
