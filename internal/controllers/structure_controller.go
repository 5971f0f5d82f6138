package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/api"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/flash"
	"ereport-admin/pkg/middleware"
)

type FieldRow struct {
	ID            uint64
	Order         int
	Label         string
	Type          string
	Classificator string
	Required      bool
	DeleteURL     string
}

type StructureView struct {
	Bulletin   entities.Bulletin
	Fields     []FieldRow
	Form       FormView
	ReorderURL string
}

type StructureController struct {
	*Base
	service        services.BulletinStructureServiceInterface
	classificators OptionSource
}

func NewStructureController(base *Base, service services.BulletinStructureServiceInterface, classificators OptionSource) *StructureController {
	return &StructureController{Base: base, service: service, classificators: classificators}
}

func structurePath(bulletinID uint64) string {
	return fmt.Sprintf("/bulletins/%d/structure", bulletinID)
}

func (ctrl *StructureController) Show(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.fail(c, err)
	}
	return ctrl.renderStructure(c, http.StatusOK, id, &dto.BulletinFieldForm{FieldType: entities.FieldTypeText}, nil, "")
}

func (ctrl *StructureController) AddField(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.fail(c, err)
	}

	form := &dto.BulletinFieldForm{}
	if err := c.Bind(form); err != nil {
		return ctrl.renderStructure(c, http.StatusBadRequest, id, form, nil, "Некорректные данные формы")
	}
	form.Normalize()
	if errs := ctrl.validate(c, form); len(errs) > 0 {
		return ctrl.renderStructure(c, http.StatusUnprocessableEntity, id, form, errs, "")
	}

	field, err := ctrl.service.AddField(c.Request().Context(), id, form)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return ctrl.dropSession(c)
		}
		return ctrl.renderStructure(c, apperrors.StatusCode(err), id, form, nil, apperrors.UserMessage(err))
	}
	return ctrl.redirect(c, flash.Success, "Поле «"+field.Label+"» добавлено", structurePath(id))
}

func (ctrl *StructureController) DeleteField(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.fail(c, err)
	}
	fieldID, err := parseID(c, "field_id")
	if err != nil {
		return ctrl.fail(c, err)
	}

	if err := ctrl.service.DeleteField(c.Request().Context(), id, fieldID); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return ctrl.dropSession(c)
		}
		return ctrl.redirect(c, flash.Error, "Не удалось удалить поле: "+apperrors.UserMessage(err), structurePath(id))
	}
	return ctrl.redirect(c, flash.Success, "Поле удалено", structurePath(id))
}

// Reorder принимает результат перетаскивания: JSON от скрипта страницы
// или обычную форму с кнопками "выше/ниже".
func (ctrl *StructureController) Reorder(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.fail(c, err)
	}
	asJSON := middleware.WantsJSON(c)

	req, err := bindReorder(c, asJSON)
	if err != nil {
		ctrl.logger.Warn("Некорректный запрос перестановки", zap.Uint64("bulletinID", id), zap.Error(err))
		if asJSON {
			return api.ErrorResponse(c, err)
		}
		return ctrl.redirect(c, flash.Error, apperrors.UserMessage(err), structurePath(id))
	}

	fields, err := ctrl.service.Move(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return ctrl.dropSession(c)
		}
		if asJSON {
			return api.ErrorResponse(c, err)
		}
		return ctrl.redirect(c, flash.Error, "Порядок не сохранён: "+apperrors.UserMessage(err), structurePath(id))
	}

	if asJSON {
		return api.SuccessOne(c, http.StatusOK, "Порядок полей сохранён", services.OrderPayload(fields))
	}
	return ctrl.redirect(c, flash.Success, "Порядок полей сохранён", structurePath(id))
}

func bindReorder(c echo.Context, asJSON bool) (dto.ReorderRequest, error) {
	var req dto.ReorderRequest
	if asJSON {
		if err := c.Bind(&req); err != nil {
			return req, apperrors.NewInvalidInputError("некорректное тело запроса")
		}
		return req, nil
	}

	form, err := c.FormParams()
	if err != nil {
		return req, apperrors.NewInvalidInputError("некорректные данные формы")
	}
	for _, raw := range form["ids"] {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return req, apperrors.NewInvalidInputError("некорректный идентификатор поля: %s", raw)
		}
		req.IDs = append(req.IDs, v)
	}
	if from, err := strconv.Atoi(form.Get("from")); err == nil {
		req.From = &from
	}
	if to, err := strconv.Atoi(form.Get("to")); err == nil {
		req.To = &to
	}
	return req, nil
}

func (ctrl *StructureController) renderStructure(c echo.Context, status int, bulletinID uint64, form *dto.BulletinFieldForm, errs map[string]string, message string) error {
	ctx := c.Request().Context()
	st, err := ctrl.service.Get(ctx, bulletinID)
	if err != nil {
		return ctrl.fail(c, err)
	}
	lookups, err := ctrl.loadLookups(ctx, map[string]OptionSource{"classificator": ctrl.classificators})
	if err != nil {
		return ctrl.fail(c, err)
	}

	base := structurePath(bulletinID)
	view := StructureView{
		Bulletin:   st.Bulletin,
		ReorderURL: base + "/reorder",
		Form: FormView{
			Title:  "Новое поле",
			Action: base + "/fields",
			Submit: "Добавить",
			Error:  message,
			Fields: applyErrors([]FormField{
				textField("label", "Подпись", form.Label, true),
				selectField("field_type", "Тип", form.FieldType, dto.FieldTypes, true),
				selectField("classificator", "Классификатор", form.Classificator.FormValue(), lookups["classificator"], false),
				checkboxField("is_required", "Обязательное", form.IsRequired),
			}, errs),
		},
	}
	for _, f := range st.Fields {
		view.Fields = append(view.Fields, FieldRow{
			ID:            f.ID,
			Order:         f.Order,
			Label:         f.Label,
			Type:          fieldTypeLabel(f.FieldType),
			Classificator: lookups.LabelID("classificator", f.Classificator),
			Required:      f.IsRequired,
			DeleteURL:     fmt.Sprintf("%s/fields/%d/delete", base, f.ID),
		})
	}

	p := ctrl.page(c, "Структура: "+st.Bulletin.Name, "/bulletins", view)
	if message != "" {
		p.Flashes = append(p.Flashes, flash.Message{Kind: flash.Error, Text: message})
	}
	return ctrl.render(c, status, "structure", p)
}

func fieldTypeLabel(t string) string {
	for _, o := range dto.FieldTypes {
		if o.Value == t {
			return o.Label
		}
	}
	return t
}
