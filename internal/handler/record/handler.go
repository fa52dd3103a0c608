package record

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/fpo-database/backend/internal/metrics"
	"github.com/zhouzirui/fpo-database/backend/internal/model/record"
	"github.com/zhouzirui/fpo-database/backend/pkg/utils"
)

const msgRecordNotFound = "Record not found"

// Handler FPO 数据集的只读 HTTP 处理器
type Handler struct {
	records record.Store
	metrics *metrics.Metrics
}

// New 创建记录处理器，m 可以为 nil
func New(records record.Store, m *metrics.Metrics) *Handler {
	return &Handler{
		records: records,
		metrics: m,
	}
}

// RegisterRoutes 注册记录相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/records", h.handleListRecords)
	r.Get("/records/{dataID}", h.handleGetRecord)
	r.Get("/directors/{dataID}", h.handleGetDirectors)
}

// handleListRecords 分页列出记录
func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", record.DefaultPage)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	perPage, err := queryInt(r, "per_page", record.DefaultPerPage)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.records.Page(page, perPage)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, record.ErrInvalidPagination) {
			status = http.StatusBadRequest
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// handleGetRecord 按 data_id 返回完整记录
func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := dataID(w, r)
	if !ok {
		return
	}

	rec, found := h.records.FindByID(id)
	h.metrics.IncrementLookup(found)
	if !found {
		utils.RespondError(w, http.StatusNotFound, msgRecordNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, rec)
}

// handleGetDirectors 返回公司的董事列表
func (h *Handler) handleGetDirectors(w http.ResponseWriter, r *http.Request) {
	id, ok := dataID(w, r)
	if !ok {
		return
	}

	directors, found := h.records.Directors(id)
	h.metrics.IncrementLookup(found)
	if !found {
		utils.RespondError(w, http.StatusNotFound, msgRecordNotFound)
		return
	}
	if directors == nil {
		directors = []record.Director{}
	}

	utils.RespondJSON(w, http.StatusOK, directors)
}

func dataID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "dataID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("invalid data_id %q: must be an integer", raw))
		return 0, false
	}
	return id, true
}

// queryInt 读取整数查询参数，缺省或为空时返回 def
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", key, raw)
	}
	return val, nil
}
