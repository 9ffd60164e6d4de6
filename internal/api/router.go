package api

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	docs "github.com/japb1998/wacrm/docs"
	"github.com/japb1998/wacrm/internal/controller"
	"github.com/japb1998/wacrm/pkg/awssess"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

var (
	routerHandler = slog.NewTextHandler(os.Stdout, nil).WithAttrs([]slog.Attr{slog.String("name", "api")})
	routerLogger  = slog.New(routerHandler)
)

const (
	ScopeName = "github.com/japb1998/wacrm/internal/api"
)

// InitRoutes wires the controllers to AWS and builds the router.
func InitRoutes() *gin.Engine {
	routerLogger.Info("Gin cold start")
	controller.Setup(awssess.MustGetSession())
	return NewRouter()
}

// NewRouter builds the router over whatever services the controllers use.
func NewRouter() *gin.Engine {
	r := gin.Default()
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidators(v)
	}
	corsConfig := cors.DefaultConfig()

	corsConfig.AllowOrigins = []string{"*"}

	// To be able to send tokens to the server.
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.AddAllowMethods("OPTIONS", "GET", "PUT", "PATCH")

	r.Use(otelgin.Middleware(ScopeName))

	r.Use(cors.New(corsConfig))

	// SWAGGER
	docs.SwaggerInfo.BasePath = ""
	{
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	r.Use(currentUserMiddleWare())

	// Templates Router
	templates := r.Group("/templates")
	{
		templates.GET("", controller.GetTemplates)
		templates.POST("", controller.CreateTemplate)
		templates.GET("/:id", controller.GetTemplate)
		templates.DELETE("/:id", controller.DeleteTemplate)
		templates.GET("/:id/variables", controller.GetTemplateVariables)
		templates.PUT("/:id/mapping", controller.UpdateTemplateMapping)
		templates.GET("/:id/prefill/:contactId", controller.PrefillTemplate)
		templates.POST("/:id/send", controller.SendTemplate)
	}

	// Contacts Router
	contacts := r.Group("/contacts")
	{
		contacts.GET("", controller.GetContacts)
		contacts.POST("", controller.CreateContact)
		contacts.GET("/fields", controller.GetContactFields)
		contacts.GET("/:id", controller.GetContact)
		contacts.PATCH("/:id", controller.UpdateContact)
		contacts.DELETE("/:id", controller.DeleteContact)
	}
	return r
}
