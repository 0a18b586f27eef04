package handlers

import (
	"bytes"
	"net/http"

	"exoplanet-explorer/visualization"

	"github.com/gin-gonic/gin"
)

type SceneResponse struct {
	Scene      visualization.Scene `json:"scene"`
	LightCurve []float64           `json:"light_curve"`
	MinY       float64             `json:"min_y"`
	MaxY       float64             `json:"max_y"`
}

func (h *Handler) currentScene() visualization.Scene {
	snap := h.explorer.State().Snapshot()
	return visualization.Derive(snap.Record, snap.Status)
}

// GetScene returns the render parameters for the active record. Without a
// record the default Sun-like scene is returned.
func (h *Handler) GetScene(c *gin.Context) {
	scene := h.currentScene()
	c.JSON(http.StatusOK, SceneResponse{
		Scene:      scene,
		LightCurve: scene.OrbitCurve(),
		MinY:       visualization.LightCurveMin,
		MaxY:       visualization.LightCurveMax,
	})
}

func (h *Handler) GetLightCurve(c *gin.Context) {
	scene := h.currentScene()

	var buf bytes.Buffer
	if err := visualization.RenderLightCurve(&buf, scene.PlanetName, scene.OrbitCurve(), scene.Status); err != nil {
		h.respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
