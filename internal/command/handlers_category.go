package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"personal-finance-bot/internal/model"
	"personal-finance-bot/internal/service"
)

// categoryName joins the command arguments into a single name.
func categoryName(args []string) (string, bool) {
	name := strings.TrimSpace(strings.Join(args, " "))
	return name, name != ""
}

func addCategory(categoryType model.CategoryType) HandlerFunc {
	label := pluralLabel(categoryType)
	return func(ctx context.Context, req Request) (string, error) {
		name, ok := categoryName(req.Args)
		if !ok {
			return "", reject(msgCategoryArgs, service.ErrMalformedCommand)
		}

		category, err := req.Services.Categories.Create(ctx, service.PersonalScope(req.User.ID), categoryType, name)
		switch {
		case err == nil:
			return fmt.Sprintf(msgCategoryAdded, label, category.Name), nil
		case errors.Is(err, service.ErrInvalidName):
			return "", reject(msgCategoryInvalidName, err)
		case errors.Is(err, service.ErrStandardCategoryExists):
			return "", reject(fmt.Sprintf(msgCategoryStandardExists, label, name), err)
		case errors.Is(err, service.ErrPersonalCategoryExists):
			return "", reject(fmt.Sprintf(msgCategoryPersonalExists, label, name), err)
		default:
			return "", err
		}
	}
}

func removeCategory(categoryType model.CategoryType) HandlerFunc {
	label := pluralLabel(categoryType)
	return func(ctx context.Context, req Request) (string, error) {
		name, ok := categoryName(req.Args)
		if !ok {
			return "", reject(msgCategoryArgs, service.ErrMalformedCommand)
		}

		category, err := req.Services.Categories.Remove(ctx, req.User.ID, categoryType, name)
		switch {
		case err == nil:
			return fmt.Sprintf(msgCategoryRemoved, label, category.Name), nil
		case errors.Is(err, service.ErrCategoryNotFound):
			return "", reject(fmt.Sprintf(msgCategoryNotExists, label, name), err)
		default:
			return "", err
		}
	}
}

func listCategories(categoryType model.CategoryType) HandlerFunc {
	return func(ctx context.Context, req Request) (string, error) {
		return categoryListing(ctx, req, categoryType)
	}
}

func handleListAllCategories(ctx context.Context, req Request) (string, error) {
	income, err := categoryListing(ctx, req, model.CategoryIncome)
	if err != nil {
		return "", err
	}
	expense, err := categoryListing(ctx, req, model.CategoryExpense)
	if err != nil {
		return "", err
	}
	return income + "\n\n" + expense, nil
}

func categoryListing(ctx context.Context, req Request, categoryType model.CategoryType) (string, error) {
	categories, err := req.Services.Categories.ListStandardAndPersonal(ctx, req.User.ID, categoryType)
	if err != nil {
		return "", err
	}

	var standard, personal []string
	for _, category := range categories {
		if category.IsStandard() {
			standard = append(standard, category.Name)
		} else {
			personal = append(personal, category.Name)
		}
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(msgCategoryListHeader, pluralLabel(categoryType)))
	builder.WriteString("\n" + msgCategoryListStandard + "\n")
	writeNumbered(&builder, standard)
	builder.WriteString("\n\n" + msgCategoryListPersonal + "\n")
	writeNumbered(&builder, personal)
	return builder.String(), nil
}

func writeNumbered(builder *strings.Builder, names []string) {
	if len(names) == 0 {
		builder.WriteString(msgCategoryListEmpty)
		return
	}
	for i, name := range names {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(fmt.Sprintf("%d. %s", i+1, name))
	}
}
