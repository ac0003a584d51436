package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onzacore/distri-api/internal/auth"
	"github.com/onzacore/distri-api/internal/models"
	"github.com/onzacore/distri-api/internal/order"
	"github.com/onzacore/distri-api/internal/printdoc"
	"github.com/onzacore/distri-api/internal/service"
	"github.com/onzacore/distri-api/internal/util"
)

// Handler contains HTTP handlers
type Handler struct {
	orders      *service.OrderService
	catalog     *service.CatalogService
	diagnostics *service.DiagnosticsService
	admin       *service.AdminService
	tokens      *auth.Manager
	sequencer   *order.Sequencer
	companyName string
}

// NewHandler creates a new HTTP handler
func NewHandler(
	orders *service.OrderService,
	catalog *service.CatalogService,
	diagnostics *service.DiagnosticsService,
	admin *service.AdminService,
	tokens *auth.Manager,
	sequencer *order.Sequencer,
	companyName string,
) *Handler {
	return &Handler{
		orders:      orders,
		catalog:     catalog,
		diagnostics: diagnostics,
		admin:       admin,
		tokens:      tokens,
		sequencer:   sequencer,
		companyName: companyName,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/api/login", h.login)

	api := router.Group("/api")
	api.Use(authMiddleware(h.tokens))
	{
		api.GET("/pedidos", h.listOrders)
		api.GET("/pedidos/:id", h.getOrderDetail)
		api.PUT("/pedidos/:id/items", h.updateOrderItems)
		api.PUT("/pedidos/:id/estado", h.updateOrderStatus)
		api.PUT("/pedidos/:id/notas", h.updateOrderNotes)
		api.GET("/pedidos/:id/documento/precios", h.orderPriceSheet)
		api.GET("/pedidos/:id/documento/armado", h.orderAssemblySheet)

		api.GET("/productos", h.listProducts)
		api.GET("/productos/export", h.exportProducts)
		api.GET("/productos/lista-precios", h.priceList)

		api.GET("/clientes", h.listClients)
		api.GET("/categorias", h.listCategories)
		api.GET("/logs", h.listActivity)

		admin := api.Group("")
		admin.Use(requireAdmin())
		{
			admin.PUT("/pedidos/:id/archive", h.archiveOrder)
			admin.PUT("/pedidos/:id/unarchive", h.unarchiveOrder)
			admin.POST("/pedidos/combinar", h.combineOrders)

			admin.POST("/productos", h.createProduct)
			admin.PUT("/productos/:id", h.updateProduct)
			admin.DELETE("/productos/:id", h.deleteProduct)

			admin.POST("/clientes", h.createClient)
			admin.PUT("/clientes/:id", h.updateClient)

			admin.POST("/categorias", h.createCategory)
			admin.DELETE("/categorias/:id", h.deleteCategory)

			admin.GET("/usuarios", h.listUsers)
			admin.POST("/usuarios", h.createUser)
			admin.DELETE("/usuarios/:id", h.deleteUser)

			admin.GET("/diagnostics/orphaned-items", h.orphanReport)
			admin.POST("/diagnostics/fix-orphans", h.fixOrphans)
		}
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Unix()})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready", "time": time.Now().Unix()})
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Credenciales incompletas"})
		return
	}

	token, user, err := h.admin.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email o contraseña incorrectos"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID inválido"})
		return 0, false
	}
	return id, true
}

func (h *Handler) listOrders(c *gin.Context) {
	includeArchived := c.Query("archivados") == "true"
	orders, err := h.orders.ListOrders(c.Request.Context(), includeArchived)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrderDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.orders.GetOrderDetail(c.Request.Context(), sessionFrom(c), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) updateOrderItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Items []models.SaveItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}

	total, err := h.orders.UpdateItems(c.Request.Context(), sessionFrom(c), id, req.Items)
	if err != nil {
		// Surfaced verbatim so the panel can show the exact reason; the edit
		// state stays on the client for retry.
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"estado" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}

	err := h.orders.UpdateStatus(c.Request.Context(), sessionFrom(c), id, req.Status)
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Estado desconocido"})
	case errors.Is(err, service.ErrStatusNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"message": "Estado no permitido para tu rol"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"estado": req.Status})
	}
}

func (h *Handler) updateOrderNotes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notas_entrega"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}

	if err := h.orders.UpdateNotes(c.Request.Context(), sessionFrom(c), id, req.Notes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notas_entrega": req.Notes})
}

func (h *Handler) archiveOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.orders.Archive(c.Request.Context(), sessionFrom(c), id)
	if errors.Is(err, service.ErrAlreadyArchived) {
		c.JSON(http.StatusConflict, gin.H{"message": "El pedido ya está archivado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) unarchiveOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.orders.Unarchive(c.Request.Context(), sessionFrom(c), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) combineOrders(c *gin.Context) {
	var req struct {
		OrderIDs []int64 `json:"pedidoIds" binding:"required,min=2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Selecciona al menos dos pedidos para combinar"})
		return
	}

	masterID, err := h.orders.CombineOrders(c.Request.Context(), sessionFrom(c), req.OrderIDs)
	if errors.Is(err, service.ErrMixedClients) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Solo puedes combinar pedidos que pertenezcan al mismo cliente"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pedidos combinados exitosamente", "nuevoPedidoId": masterID})
}

func (h *Handler) orderPriceSheet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ord, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}

	pdf, err := printdoc.RenderPriceSheet(printdoc.BuildPriceSheet(h.companyName, *ord, h.sequencer))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	util.DocumentsRenderedTotal.WithLabelValues("precios").Inc()
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) orderAssemblySheet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ord, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}

	pdf, err := printdoc.RenderAssemblySheet(printdoc.BuildAssemblySheet(*ord))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	util.DocumentsRenderedTotal.WithLabelValues("armado").Inc()
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.GetProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) exportProducts(c *gin.Context) {
	data, err := h.catalog.ExportCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="productos.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *Handler) priceList(c *gin.Context) {
	products, err := h.catalog.GetProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	list := printdoc.BuildPriceList(h.companyName, products, h.sequencer, time.Now())
	pdf, err := printdoc.RenderPriceList(list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	util.DocumentsRenderedTotal.WithLabelValues("lista_precios").Inc()
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) createProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}
	p.ID = 0

	if err := h.catalog.SaveProduct(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}
	p.ID = id

	if err := h.catalog.SaveProduct(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.admin.GetClients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) createClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}
	client.ID = 0

	if err := h.admin.SaveClient(c.Request.Context(), &client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) updateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}
	client.ID = id

	if err := h.admin.SaveClient(c.Request.Context(), &client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.admin.GetCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) createCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}

	if err := h.admin.CreateCategory(c.Request.Context(), &category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.admin.DeleteCategory(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.admin.GetUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) createUser(c *gin.Context) {
	var req struct {
		Name     string `json:"nombre" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"rol" binding:"required,oneof=admin deposito vendedor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}

	user, err := h.admin.CreateUser(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) orphanReport(c *gin.Context) {
	report, err := h.diagnostics.AnalyzeOrphans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) fixOrphans(c *gin.Context) {
	var req struct {
		Candidates []service.FixCandidate `json:"candidates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cuerpo de la petición inválido"})
		return
	}

	updated, err := h.diagnostics.FixOrphans(c.Request.Context(), sessionFrom(c), req.Candidates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Corrección completada",
		"updatedCount": updated,
	})
}

func (h *Handler) listActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	entries, err := h.admin.GetActivity(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
