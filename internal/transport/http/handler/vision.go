package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docchat/internal/transport/http/response"
	"docchat/internal/vision"
)

const maxImageSize = 5 << 20 // 5 MB

// VisionHandler describes uploaded images with the local captioner.
type VisionHandler struct {
	captioner *vision.Captioner
}

func NewVisionHandler(captioner *vision.Captioner) *VisionHandler {
	return &VisionHandler{captioner: captioner}
}

// Caption accepts a multipart form with "image" and returns a caption plus
// keyword tags.
func (h *VisionHandler) Caption(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing image file (form field 'image')")
		return
	}
	if file.Size > maxImageSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "image too large (max 5MB)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to open uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to read image")
		return
	}

	result, err := h.captioner.Describe(data)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "cannot open shared object file") || strings.Contains(msg, "Error loading ONNX shared library") {
			msg = "ONNX Runtime library not found. Install it and set VISION_ONNX_LIB to the path to libonnxruntime.so."
		} else {
			msg = "caption failed: " + msg
		}
		response.Error(c, http.StatusServiceUnavailable, response.CodeInternalServer, msg)
		return
	}

	response.OK(c, result)
}
