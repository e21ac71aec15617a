package main

// General API documentation for swaggo. Regenerate with `swag init` and
// build with -tags=swagger to serve the UI.
//
// @title           sentineld API
// @version         1.0
// @description     HTTP API for real-time machine failure risk prediction.
//
// @contact.name   sentineld maintainers
// @contact.url    https://github.com/your-org/sentineld
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
