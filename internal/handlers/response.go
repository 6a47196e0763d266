package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"menu-api/internal/apperr"
	"menu-api/internal/logger"
	"menu-api/internal/middleware"
	"menu-api/internal/models"
	"menu-api/internal/validation"
)

// envelope is the body of every response.
type envelope struct {
	Msg  string `json:"msg"`
	IsOk bool   `json:"isOk"`
	Data any    `json:"data"`
}

func respondOK(c *gin.Context, code string, data any) {
	c.JSON(http.StatusOK, envelope{Msg: code, IsOk: true, Data: data})
}

// respondWithError writes err as an envelope. Coded errors keep their
// status and code; anything else becomes a 500 with fallback.
func respondWithError(c *gin.Context, route string, err error, fallback string) {
	status, code := http.StatusInternalServerError, fallback
	if ae, ok := apperr.As(err); ok {
		status, code = ae.Status, ae.Code
	}

	entry := logger.Get("app").WithFields(logrus.Fields{
		"route":  route,
		"status": status,
		"code":   code,
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	c.AbortWithStatusJSON(status, envelope{Msg: code, IsOk: false, Data: nil})
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		logger.Get("app").WithField("route", route).Errorf("panic recovered: %v", r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{Msg: apperr.CodeInternalServerError})
	}
}

// bindJSON decodes the body; an unreadable body is INVALID_BODY.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Wrap(http.StatusBadRequest, apperr.CodeInvalidBody, err)
	}
	return nil
}

// queryLang validates ?lang_abbr= and applies the default.
func queryLang(c *gin.Context) (string, error) {
	lang := strings.TrimSpace(c.Query("lang_abbr"))
	if err := validation.Lang(lang); err != nil {
		return "", err
	}
	return models.LangOrDefault(lang), nil
}

// audit records a successful admin mutation.
func audit(c *gin.Context, route string, fields logrus.Fields) {
	claims, _ := middleware.ClaimsFrom(c)
	entry := logger.Get("audit").WithFields(logrus.Fields{
		"route":    route,
		"username": claims.Username,
		"role":     claims.Role,
	})
	entry.WithFields(fields).Info("mutation")
}
