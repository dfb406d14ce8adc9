package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/search-agent/internal/domain/adapter"
	"github.com/janhq/search-agent/internal/interfaces/httpserver/responses"
	"github.com/janhq/search-agent/internal/utils/platformerrors"
)

// CommandRoute accepts raw adapter commands as JSON.
type CommandRoute struct {
	session adapter.Session
}

func NewCommandRoute(session adapter.Session) *CommandRoute {
	return &CommandRoute{session: session}
}

func (route *CommandRoute) RegisterRouter(router *gin.RouterGroup) {
	router.POST("/execute", route.execute)
}

// execute runs one adapter command.
// @Summary Execute an adapter command
// @Description Runs a raw command such as {"action":"search","query":"rust ownership"} and returns the normalized result or an error payload. Adapter failures are reported in the body with status 200; only malformed requests return 4xx.
// @Tags Adapter API
// @Accept json
// @Produce json
// @Param request body adapter.ExecuteArgs true "Adapter command"
// @Success 200 {object} adapter.NormalizedResult "Normalized search result, or {\"error\": \"...\"}"
// @Failure 400 {object} responses.ErrorResponse "Body is not a JSON object"
// @Router /v1/execute [post]
func (route *CommandRoute) execute(reqCtx *gin.Context) {
	body, err := io.ReadAll(reqCtx.Request.Body)
	if err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeInternal, "failed to read request body", "4b8c1f0e-3a52-4e7d-9d61-2f8a7c5e1b94")
		return
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var cmd adapter.Command
	if err := decoder.Decode(&cmd); err != nil || cmd == nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "request body must be a JSON object", "9e2d7a4c-6b1f-4c83-a5e0-7f3b9d2c8e16")
		return
	}

	resp := route.session.Execute(reqCtx.Request.Context(), cmd)
	reqCtx.JSON(http.StatusOK, resp)
}
