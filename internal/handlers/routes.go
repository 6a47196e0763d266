package handlers

import (
	"github.com/gin-gonic/gin"

	"menu-api/internal/auth"
	"menu-api/internal/cache"
	"menu-api/internal/middleware"
	"menu-api/internal/store"
)

type Deps struct {
	Store      store.Store
	Cache      cache.Cache
	Tokens     *auth.TokenService
	SuperAdmin SuperAdmin
}

// RegisterRoutes mounts every endpoint on r.
func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	admin := middleware.AuthGuard(d.Tokens, d.Store, d.SuperAdmin.Username, auth.PrivilegeAdmin)
	superAdmin := middleware.AuthGuard(d.Tokens, d.Store, d.SuperAdmin.Username, auth.PrivilegeSuperAdmin)

	r.GET("/healthz", Health(d.Store, d.Cache))
	r.POST("/login", Login(d.Store, d.Tokens, d.SuperAdmin))

	r.GET("/category", GetCategories(d.Store))
	r.POST("/category", admin, CreateCategory(d.Store))
	r.PUT("/category", admin, UpdateCategory(d.Store))
	r.DELETE("/category", admin, DeleteCategory(d.Store, d.Store))

	r.GET("/product", GetProducts(d.Store, d.Store))
	r.POST("/product", admin, CreateProduct(d.Store, d.Store))
	r.PUT("/product", admin, UpdateProduct(d.Store, d.Store))
	r.DELETE("/product", admin, DeleteProduct(d.Store))

	r.GET("/content", GetContent(d.Store, d.Cache))
	r.PUT("/content", admin, UpdateContent(d.Store, d.Cache))

	r.GET("/manage/theme", GetTheme(d.Store, d.Cache))
	r.PUT("/manage/theme", superAdmin, UpdateTheme(d.Store, d.Cache))

	manage := r.Group("/manage")
	manage.Use(superAdmin)
	{
		manage.GET("", ListAdmins(d.Store))
		manage.POST("", CreateAdmin(d.Store, d.SuperAdmin))
		manage.DELETE("", DeleteAdmin(d.Store, d.SuperAdmin))
	}
}
