// utils/response.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondWithError writes the failure envelope. Every handler translates
// its own failures through here; nothing reaches the transport unhandled.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// RespondWithData writes a single-document success envelope.
func RespondWithData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// RespondCreated writes the creation envelope with a human message.
func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(201, gin.H{"success": true, "data": data, "message": message})
}

// ListResponse assembles the collection envelope. summary may be nil, in
// which case it is omitted.
func ListResponse(data interface{}, total, filtered int64, hasMore bool, summary gin.H) gin.H {
	resp := gin.H{
		"success":  true,
		"data":     data,
		"total":    total,
		"filtered": filtered,
		"hasMore":  hasMore,
	}
	if summary != nil {
		resp["summary"] = summary
	}
	return resp
}
