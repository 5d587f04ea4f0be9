package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/account-registration/internal/interface/http"
)

type AuthModule struct {
	Handler *handlers.RegistrationHandler
}

func NewAuthModule(h *handlers.RegistrationHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
}
