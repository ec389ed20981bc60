package web

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/showcase/internal/session"
)

// AdminStats summarizes the live carousels for the dashboard.
type AdminStats struct {
	LiveMounts int64            `json:"live_mounts"`
	Running    int64            `json:"running"`
	Idle       int64            `json:"idle"`
	Paused     int64            `json:"paused"`
	ByDeck     map[string]int64 `json:"by_deck"`
	Mounts     []session.Info   `json:"mounts"`
}

type admin struct {
	token    string
	salt     string
	username string
	password string
	hub      *session.Hub
}

func newAdmin(username, password string, hub *session.Hub) *admin {
	a := &admin{
		token:    generateAdminToken(),
		salt:     generateAdminToken(),
		username: username,
		password: password,
		hub:      hub,
	}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.token)
	}
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address so admin logs never hold raw client addresses.
func (a *admin) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			if c.Request.Method == http.MethodGet {
				c.Redirect(http.StatusFound, "/admin/login")
			} else {
				c.Status(http.StatusUnauthorized)
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *admin) stats() *AdminStats {
	stats := &AdminStats{ByDeck: make(map[string]int64)}

	stats.Mounts = a.hub.Mounts()
	for _, m := range stats.Mounts {
		stats.LiveMounts++
		stats.ByDeck[m.Deck]++
		switch {
		case m.Paused:
			stats.Paused++
		case m.State == "running":
			stats.Running++
		default:
			stats.Idle++
		}
	}
	return stats
}

func (a *admin) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

func (a *admin) setupRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if a.credentialsMatch(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie("admin_token", a.token, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		log.Printf("Failed admin login attempt from %s", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", a.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(a.authMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": a.stats(),
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.stats())
	})

	// Force a stuck or abandoned carousel to unmount.
	adminGroup.DELETE("/mounts/:id", func(c *gin.Context) {
		id := c.Param("id")
		if err := a.hub.Unmount(id, session.ReasonAdmin); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mount not found"})
			return
		}

		log.Printf("Mount %s unmounted by admin from %s", id, a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Mount unmounted"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		c.Header("Content-Disposition", "attachment; filename=carousel-stats.json")
		log.Printf("Admin stats exported by %s", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, a.stats())
	})
}
