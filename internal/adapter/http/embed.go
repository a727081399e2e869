package http

import _ "embed"

//go:embed assets/dashboard.html
var dashboardHTML []byte
