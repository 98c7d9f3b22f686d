package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	fiberadapter "github.com/awslabs/aws-lambda-go-api-proxy/fiber"
	"github.com/volunteermatch/volunteer-server-go/config"
	"github.com/volunteermatch/volunteer-server-go/database"
	"github.com/volunteermatch/volunteer-server-go/log"
	"github.com/volunteermatch/volunteer-server-go/router"
	"github.com/volunteermatch/volunteer-server-go/sentrylog"
	"github.com/volunteermatch/volunteer-server-go/session"
	"go.uber.org/zap"
)

var fiberLambda *fiberadapter.FiberLambda

// Sessions are held in memory, so a logged-in session only survives while the same warm instance serves it.
func init() {
	cfg, err := config.Parse()
	if err != nil {
		panic(err)
	}

	if _, err := log.Init(cfg.LogLevel, cfg.LogDevelopment); err != nil {
		panic(err)
	}

	if err := sentrylog.InitSentry(cfg.SentryDSN); err != nil {
		log.L().Error("Sentry disabled", zap.Error(err))
	}

	if err := database.InitDatabase(cfg); err != nil {
		log.L().Fatal("Database unavailable", zap.Error(err))
	}

	session.Init(session.Config{
		Expiration:   cfg.SessionExpiry,
		CookieSecure: cfg.SessionCookieSecure,
	})

	app := router.NewApp(router.Config{
		CorsOrigins:  cfg.CorsOrigins,
		PingDatabase: true,
	})

	fiberLambda = fiberadapter.New(app)
}

// Handler proxies API Gateway requests to the Fiber app.
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return fiberLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
