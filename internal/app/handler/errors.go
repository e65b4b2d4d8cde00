package handler

import (
	"errors"
	"net/http"

	"DBsentinel-Gateway/internal/app/databackend"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondBackendError переводит ошибку бэкенда данных в ответ.
// Любой сбой бэкенда для клиента выглядит как 502.
func respondBackendError(ctx *gin.Context, err error) {
	if errors.Is(err, databackend.ErrInvalidQuery) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logrus.Error("data backend request failed: ", err)
	ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
