package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/school-service/internal/api/dto"
	"github.com/unifiedui/school-service/internal/api/middleware"
	"github.com/unifiedui/school-service/internal/core/docdb"
	domainerrors "github.com/unifiedui/school-service/internal/domain/errors"
	"github.com/unifiedui/school-service/internal/services/students"
)

// StudentsHandler handles student endpoints.
type StudentsHandler struct {
	students students.Service
}

// NewStudentsHandler creates a new StudentsHandler.
func NewStudentsHandler(studentsService students.Service) *StudentsHandler {
	return &StudentsHandler{
		students: studentsService,
	}
}

// CreateStudent handles POST /tenants/:tenantId/students.
// @Summary Create a student
// @Tags Students
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/v1/school-service/tenants/{tenantId}/students [post]
func (h *StudentsHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	student, err := h.students.Create(c.Request.Context(), middleware.GetTenantID(c), students.CreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Grade:     req.Grade,
		ClassID:   req.ClassID,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewStudentResponse(student))
}

// GetStudent handles GET /tenants/:tenantId/students/:studentId.
// @Summary Get a student
// @Tags Students
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/v1/school-service/tenants/{tenantId}/students/{studentId} [get]
func (h *StudentsHandler) GetStudent(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), middleware.GetTenantID(c), c.Param("studentId"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// ListStudents handles GET /tenants/:tenantId/students.
// @Summary List students
// @Tags Students
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param grade query int false "Grade filter"
// @Param limit query int false "Page size (1-200)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListStudentsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/v1/school-service/tenants/{tenantId}/students [get]
func (h *StudentsHandler) ListStudents(c *gin.Context) {
	var query dto.ListStudentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid query", err.Error()))
		return
	}

	list, err := h.students.List(c.Request.Context(), &docdb.ListStudentsOptions{
		TenantID: middleware.GetTenantID(c),
		Grade:    query.Grade,
		Limit:    query.Limit,
		Skip:     query.Offset,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	out := make([]*dto.StudentResponse, 0, len(list))
	for _, student := range list {
		out = append(out, dto.NewStudentResponse(student))
	}

	c.JSON(http.StatusOK, dto.ListStudentsResponse{
		Students: out,
		Count:    len(out),
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
}
