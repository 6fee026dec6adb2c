package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/kds"
	"github.com/plateful/pos-backend/middlewares"
	"github.com/plateful/pos-backend/models"
	"github.com/plateful/pos-backend/services"
	"github.com/plateful/pos-backend/utils"
)

var kdsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type KDSController struct {
	Hub   *kds.Hub
	Perms *services.PermissionChecker
}

func NewKDSController(db *gorm.DB, hub *kds.Hub) *KDSController {
	return &KDSController{Hub: hub, Perms: services.NewPermissionChecker(db)}
}

// Stream -> GET /ws/kds/:store_id
//
// Upgrades to a websocket and registers the connection as a kitchen
// display for the store. The connection only receives; incoming frames
// are drained to detect disconnects.
func (kc *KDSController) Stream(c *gin.Context) {
	storeID, err := paramUint(c, "store_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := kc.Perms.Require(middlewares.ActorID(c), storeID, models.StaffOrderRoles...); err != nil {
		utils.RespondError(c, err)
		return
	}

	conn, err := kdsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Errorf("kds: websocket upgrade for store %d: %v", storeID, err)
		return
	}

	kc.Hub.Register(conn, storeID)

	go func() {
		defer kc.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
