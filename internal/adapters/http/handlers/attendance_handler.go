package handlers

import (
	"garderie-api/internal/core/services"
	"garderie-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AttendanceHandler handles daily presence endpoints
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// ListAttendance lists one day of attendance
// @Summary List attendance
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD), today by default"
// @Param class query string false "Class"
// @Success 200 {object} services.AttendanceList
// @Router /attendance [get]
func (h *AttendanceHandler) ListAttendance(c *fiber.Ctx) error {
	result, err := h.attendanceService.List(c.UserContext(), c.Query("date"), c.Query("class"))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, result)
}

// MarkPresent checks a child in for today
// @Summary Mark child present
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MarkInput true "Check-in"
// @Success 201 {object} models.Attendance
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /attendance [post]
func (h *AttendanceHandler) MarkPresent(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return handleError(c, err)
	}

	var input services.MarkInput
	if err := parseBody(c, &input); err != nil {
		return handleError(c, err)
	}

	attendance, err := h.attendanceService.Mark(c.UserContext(), &input, userID)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, attendance)
}

// Children lists active children with their presence flag
// @Summary Children with presence
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD), today by default"
// @Success 200 {array} services.ChildPresence
// @Router /attendance/children [get]
func (h *AttendanceHandler) Children(c *fiber.Ctx) error {
	result, err := h.attendanceService.Children(c.UserContext(), c.Query("date"))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, result)
}

// Stats summarizes presence on a day
// @Summary Attendance statistics
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD), today by default"
// @Success 200 {object} services.AttendanceStats
// @Router /attendance/stats [get]
func (h *AttendanceHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.attendanceService.Stats(c.UserContext(), c.Query("date"))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, stats)
}

// CheckOut records a child's departure
// @Summary Check out
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Success 200 {object} models.Attendance
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /attendance/{id}/checkout [put]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	attendance, err := h.attendanceService.CheckOut(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, attendance)
}

// DeleteAttendance removes an attendance record
// @Summary Delete attendance
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) DeleteAttendance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.attendanceService.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Présence supprimée avec succès")
}
