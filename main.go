package main

import (
	"embed"
	"log"
	"os"

	"tomatoclock/internal/app"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"tomatoclock/internal/infrastructure/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	env := os.Getenv("TOMATOCLOCK_ENVIRONMENT")
	if env == "" {
		env = "production"
	}

	// Create an instance of the app structure
	application, err := app.NewApp(env)
	if err != nil {
		log.Fatal(err)
	}

	settings := application.GetSettings()

	// Create application with options
	err = wails.Run(&options.App{
		Title:            "Tomato Clock",
		Width:            420,
		Height:           640,
		MinWidth:         360,
		MinHeight:        520,
		DisableResize:    false,
		Fullscreen:       false,
		AlwaysOnTop:      settings.AlwaysOnTop,
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 1},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Menu:             nil,
		Logger:           logging.NewWailsLoggerAdapter(application.GetLogger()),
		LogLevel:         logger.INFO,
		OnStartup:        application.Startup,
		OnDomReady:       application.DomReady,
		OnBeforeClose:    application.BeforeClose,
		OnShutdown:       application.Shutdown,
		WindowStartState: options.Normal,
		Bind: []interface{}{
			application,
		},
		// Windows platform specific options
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
		},
		// Mac platform specific options
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  false,
			},
			About: &mac.AboutInfo{
				Title:   "Tomato Clock",
				Message: "A pomodoro focus timer",
			},
		},
	})

	if err != nil {
		log.Fatal(err)
	}
}
