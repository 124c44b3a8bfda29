package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var landingPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>Meridian API</title>
<style>
body { font-family: Georgia, serif; margin: 0; background: linear-gradient(150deg,#16302b,#2f6d5f); color: #f4efe6; min-height: 100vh; display: flex; flex-direction: column; }
header { flex: 1; padding: 72px 24px; text-align: center; }
h1 { font-size: 42px; letter-spacing: 2px; margin-bottom: 8px; }
p { opacity: 0.85; }
a.button { display: inline-block; margin: 10px; padding: 12px 28px; font-size: 16px; border-radius: 4px; text-decoration: none; background: rgba(255,255,255,0.15); color: #f4efe6; transition: background 0.3s; }
a.button:hover { background: rgba(255,255,255,0.35); }
footer { text-align: center; padding: 20px; font-size: 14px; opacity: 0.7; }
</style>
</head>
<body>
<header>
  <h1>MERIDIAN</h1>
  <p>Travel stories worth the timing.</p>
  <a class="button" href="/api/v1/events/timely">Happening now</a>
  <a class="button" href="/swagger/index.html">API reference</a>
</header>
<footer>Meridian editorial backend</footer>
</body>
</html>`

func RegisterPages(e *echo.Echo, frontendURL string) {
	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, landingPageHTML)
	})

	e.GET("/home", func(c echo.Context) error {
		if frontendURL != "" {
			return c.Redirect(http.StatusTemporaryRedirect, frontendURL)
		}
		return c.HTML(http.StatusOK, "<h1>Meridian</h1><p>The magazine frontend is not configured.</p>")
	})
}
