package main

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

// uiPage posts the textarea contents to /run_query and renders the
// response as a table, "No results." or a preformatted block.
//
//go:embed ui.html
var uiPage []byte

func serveUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", uiPage)
}
