package server

import (
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"vegetable-orders/internal/config"
	"vegetable-orders/internal/handlers"
	"vegetable-orders/internal/middleware"
	"vegetable-orders/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// formatPrice renders an integer amount with thousands separators.
func formatPrice(amount int) string {
	s := strconv.Itoa(amount)
	sign := ""
	if amount < 0 {
		sign, s = "-", s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

func imageURL(name string) string {
	return "/uploads/" + name
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatPrice": formatPrice,
		"imageURL":    imageURL,
	}
}

func NewRouter(cfg *config.Config, h *handlers.Handler) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.Logger(h.Log), gin.Recovery())
	r.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))
	r.Static("/uploads", cfg.UploadDir)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400, HttpOnly: true})
	r.Use(sessions.Sessions("veg_session", store))

	r.GET("/", h.Index)

	// PRODUCER CATALOG
	r.GET("/admin", h.AdminPage)
	r.GET("/add", h.ShowAddVegetable)
	r.POST("/add", h.AddVegetable)
	r.GET("/edit/:id", h.ShowEditVegetable)
	r.POST("/edit/:id", h.EditVegetable)
	r.POST("/delete/:id", h.DeleteVegetable)

	// EMPLOYEE ORDERING
	r.GET("/order_page", h.OrderPage)
	r.GET("/order/:id", h.ShowOrderForm)
	r.POST("/order/:id", h.PlaceOrder)
	r.GET("/orders", h.OrderHistory)

	r.GET("/audit", h.ListAuditLogs)

	r.GET("/health", h.Health)

	return r, nil
}
