package assistant

import (
	"context"
	"fmt"

	"github.com/tracksure/tracksure/internal/category"
	"github.com/tracksure/tracksure/internal/notification"
	"github.com/tracksure/tracksure/internal/product"
	"github.com/tracksure/tracksure/internal/status"
)

// BuildTools declares the assistant's capability surface. Read, create and
// update only: no tool deletes anything, so the model cannot be talked into
// destructive actions.
func BuildTools(
	products product.ServiceAPI,
	categories category.ServiceAPI,
	statuses status.ServiceAPI,
	notifications notification.ServiceAPI,
) []ToolSpec {
	return []ToolSpec{
		{
			Name:        "list_products",
			Description: "List all products of the current tenant with their owner, status and category.",
			Execute: func(ctx context.Context, tc ToolContext, args map[string]interface{}) (map[string]interface{}, error) {
				list, err := products.List(tc.UserID, tc.TenantID)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"products": list}, nil
			},
		},
		{
			Name:        "create_product",
			Description: "Register a new product. The acting user becomes manufacturer and initial owner unless stated otherwise.",
			Parameters: map[string]ParamSpec{
				"name":        {Type: "string", Description: "Product name"},
				"description": {Type: "string", Description: "Optional product description"},
			},
			Required: []string{"name"},
			Execute: func(ctx context.Context, tc ToolContext, args map[string]interface{}) (map[string]interface{}, error) {
				name, _ := args["name"].(string)
				description, _ := args["description"].(string)
				created, err := products.Create(tc.UserID, tc.TenantID, product.CreateProductDTO{
					Name:           name,
					Description:    description,
					ManufacturerID: tc.UserID,
					CurrentOwnerID: tc.UserID,
				})
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"product": created}, nil
			},
		},
		{
			Name:        "update_product",
			Description: "Update a product's name or description by its id.",
			Parameters: map[string]ParamSpec{
				"product_id":  {Type: "integer", Description: "Product id"},
				"name":        {Type: "string", Description: "New name"},
				"description": {Type: "string", Description: "New description"},
			},
			Required: []string{"product_id"},
			Execute: func(ctx context.Context, tc ToolContext, args map[string]interface{}) (map[string]interface{}, error) {
				productID, err := intArg(args, "product_id")
				if err != nil {
					return nil, err
				}
				dto := product.UpdateProductDTO{}
				if name, ok := args["name"].(string); ok && name != "" {
					dto.Name = &name
				}
				if description, ok := args["description"].(string); ok && description != "" {
					dto.Description = &description
				}
				updated, err := products.Update(tc.UserID, tc.TenantID, productID, dto)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"product": updated}, nil
			},
		},
		{
			Name:        "list_categories",
			Description: "List the tenant's product categories.",
			Execute: func(ctx context.Context, tc ToolContext, args map[string]interface{}) (map[string]interface{}, error) {
				list, err := categories.List(tc.UserID, tc.TenantID)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"categories": list}, nil
			},
		},
		{
			Name:        "create_category",
			Description: "Create a product category.",
			Parameters: map[string]ParamSpec{
				"name":        {Type: "string", Description: "Category name"},
				"description": {Type: "string", Description: "Optional description"},
			},
			Required: []string{"name"},
			Execute: func(ctx context.Context, tc ToolContext, args map[string]interface{}) (map[string]interface{}, error) {
				name, _ := args["name"].(string)
				description, _ := args["description"].(string)
				created, err := categories.Create(tc.UserID, tc.TenantID, category.CategoryDTO{
					Name:        name,
					Description: description,
				})
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"category": created}, nil
			},
		},
		{
			Name:        "list_statuses",
			Description: "List the tenant's product statuses.",
			Execute: func(ctx context.Context, tc ToolContext, args map[string]interface{}) (map[string]interface{}, error) {
				list, err := statuses.List(tc.UserID, tc.TenantID)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"statuses": list}, nil
			},
		},
		{
			Name:        "list_notifications",
			Description: "List the acting user's notifications.",
			Execute: func(ctx context.Context, tc ToolContext, args map[string]interface{}) (map[string]interface{}, error) {
				list, err := notifications.List(tc.UserID)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"notifications": list}, nil
			},
		},
	}
}

func intArg(args map[string]interface{}, key string) (int64, error) {
	switch v := args[key].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("argument %q must be a number", key)
	}
}
