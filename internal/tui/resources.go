package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/commerce-console/internal/access"
	"github.com/MKhiriev/commerce-console/internal/service"
	"github.com/MKhiriev/commerce-console/models"
)

var (
	adminOnly     = access.Constraints{RequiredRole: models.RoleAdmin}
	moderatorPlus = access.Constraints{MinimumRole: models.RoleModerator}
	supportPlus   = access.Constraints{MinimumRole: models.RoleSupport}
)

// invalid reports a form value the operator has to fix.
func invalid(format string, args ...any) error {
	return &service.UserError{
		Message: fmt.Sprintf(format, args...),
		Err:     service.ErrInvalidDataProvided,
	}
}

func required(v formValues, labels ...string) error {
	for _, l := range labels {
		if v.get(l) == "" {
			return invalid("%s is required", l)
		}
	}
	return nil
}

func parseAmount(v formValues, label string) (float64, error) {
	f, err := strconv.ParseFloat(v.get(label), 64)
	if err != nil || f < 0 {
		return 0, invalid("%s must be a non-negative number", label)
	}
	return f, nil
}

func parseCount(v formValues, label string) (int, error) {
	n, err := strconv.Atoi(v.get(label))
	if err != nil || n < 0 {
		return 0, invalid("%s must be a non-negative integer", label)
	}
	return n, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatTime(t *models.Timestamp) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// ── Users ───────────────────────────────────────────────────────────────────

func newUsersPage(ctx context.Context, session service.SessionService, svc *service.UsersService) *listPage[models.DirectoryUser] {
	roleValues := []string{service.FilterAll}
	for _, r := range models.Roles() {
		roleValues = append(roleValues, string(r))
	}

	return newListPage(ctx, session, listPageConfig[models.DirectoryUser]{
		screen: access.ScreenUsers,
		title:  "USERS",
		ctrl:   svc.ListController,
		id:     func(u models.DirectoryUser) int64 { return u.ID },
		columns: []column[models.DirectoryUser]{
			{"ID", func(u models.DirectoryUser) string { return strconv.FormatInt(u.ID, 10) }},
			{"Username", func(u models.DirectoryUser) string { return u.Username }},
			{"Name", func(u models.DirectoryUser) string { return strings.TrimSpace(u.FirstName + " " + u.LastName) }},
			{"Email", func(u models.DirectoryUser) string { return u.Email }},
			{"Role", func(u models.DirectoryUser) string { return string(u.Role) }},
			{"Active", func(u models.DirectoryUser) string { return yesNo(u.Active) }},
			{"Created", func(u models.DirectoryUser) string { return formatTime(u.CreatedAt) }},
		},
		filters: []filterSpec{
			{name: service.FilterUserRole, label: "Role", values: roleValues},
			{name: service.FilterUserStatus, label: "Status", values: []string{service.FilterAll, "active", "inactive"}},
		},
		actions: []listAction[models.DirectoryUser]{
			{
				key:   "n",
				label: "new",
				allow: adminOnly,
				done:  "User created",
				form: func(*models.DirectoryUser) *formModel {
					return newFormModel("NEW USER",
						formField{label: "Username"},
						formField{label: "Email"},
						formField{label: "Password", secret: true},
						formField{label: "First name"},
						formField{label: "Last name"},
						formField{label: "Phone"},
						formField{label: "Role", value: string(models.RoleUser), placeholder: "USER, SUPPORT, MODERATOR or ADMIN"},
					)
				},
				submit: func(ctx context.Context, _ *models.DirectoryUser, v formValues) error {
					if err := required(v, "Username", "Email", "Password"); err != nil {
						return err
					}
					role := models.Role(strings.ToUpper(v.get("Role")))
					if role.Level() == 0 {
						return invalid("unknown role %q", v.get("Role"))
					}
					return svc.Create(ctx, models.CreateUserRequest{
						Username:  v.get("Username"),
						Email:     v.get("Email"),
						Password:  v["Password"],
						FirstName: v.get("First name"),
						LastName:  v.get("Last name"),
						Phone:     models.NullableString(v.get("Phone")),
						Role:      role,
					})
				},
			},
			{
				key:       "t",
				label:     "toggle active",
				allow:     adminOnly,
				needsItem: true,
				done:      "User status updated",
				run: func(ctx context.Context, u *models.DirectoryUser) error {
					return svc.ToggleStatus(ctx, u.ID)
				},
			},
			{
				key:       "d",
				label:     "delete",
				allow:     adminOnly,
				needsItem: true,
				done:      "User deleted",
				confirm: func(u *models.DirectoryUser) string {
					return fmt.Sprintf("Delete user %s", u.Username)
				},
				run: func(ctx context.Context, u *models.DirectoryUser) error {
					return svc.Delete(ctx, u.ID)
				},
			},
		},
	})
}

// ── Orders ──────────────────────────────────────────────────────────────────

func newOrdersPage(ctx context.Context, session service.SessionService, svc *service.OrdersService) *listPage[models.Order] {
	statuses := []string{service.FilterAll}
	for _, s := range []models.OrderStatus{
		models.OrderPending, models.OrderConfirmed, models.OrderProcessing, models.OrderShipped,
		models.OrderDelivered, models.OrderCompleted, models.OrderCancelled,
	} {
		statuses = append(statuses, string(s))
	}

	return newListPage(ctx, session, listPageConfig[models.Order]{
		screen: access.ScreenOrders,
		title:  "ORDERS",
		ctrl:   svc.ListController,
		id:     func(o models.Order) int64 { return o.ID },
		columns: []column[models.Order]{
			{"ID", func(o models.Order) string { return strconv.FormatInt(o.ID, 10) }},
			{"Number", func(o models.Order) string { return o.OrderNumber }},
			{"User", func(o models.Order) string { return strconv.FormatInt(o.UserID, 10) }},
			{"Date", func(o models.Order) string { return formatTime(o.OrderDate) }},
			{"Total", func(o models.Order) string { return money(o.TotalAmount) }},
			{"Status", func(o models.Order) string { return string(o.Status) }},
			{"Items", func(o models.Order) string { return strconv.Itoa(len(o.OrderItems)) }},
		},
		filters: []filterSpec{
			{name: service.FilterOrderStatus, label: "Status", values: statuses},
		},
		actions: []listAction[models.Order]{
			{
				key:   "n",
				label: "new",
				done:  "Order created",
				form: func(*models.Order) *formModel {
					userID := ""
					if id := sessionUserID(session.Session()); id > 0 {
						userID = strconv.FormatInt(id, 10)
					}
					return newFormModel("NEW ORDER",
						formField{label: "User ID", value: userID},
						formField{label: "Product ID"},
						formField{label: "Quantity", value: "1"},
						formField{label: "Price"},
						formField{label: "Shipping address"},
						formField{label: "Billing address"},
						formField{label: "Notes"},
					)
				},
				submit: func(ctx context.Context, _ *models.Order, v formValues) error {
					if err := required(v, "User ID", "Product ID", "Shipping address"); err != nil {
						return err
					}
					userID, err := strconv.ParseInt(v.get("User ID"), 10, 64)
					if err != nil {
						return invalid("User ID must be a number")
					}
					productID, err := strconv.ParseInt(v.get("Product ID"), 10, 64)
					if err != nil {
						return invalid("Product ID must be a number")
					}
					qty, err := parseCount(v, "Quantity")
					if err != nil {
						return err
					}
					price, err := parseAmount(v, "Price")
					if err != nil {
						return err
					}
					billing := v.get("Billing address")
					if billing == "" {
						billing = v.get("Shipping address")
					}
					return svc.Create(ctx, models.CreateOrderRequest{
						UserID:          userID,
						ShippingAddress: v.get("Shipping address"),
						BillingAddress:  billing,
						Notes:           v.get("Notes"),
						OrderItems:      []models.OrderItem{{ProductID: productID, Quantity: qty, Price: price}},
					})
				},
			},
			{
				key:       "c",
				label:     "complete",
				allow:     supportPlus,
				needsItem: true,
				done:      "Order completed",
				run: func(ctx context.Context, o *models.Order) error {
					return svc.Complete(ctx, o.ID)
				},
			},
			{
				key:       "x",
				label:     "cancel",
				needsItem: true,
				done:      "Order cancelled",
				confirm: func(o *models.Order) string {
					return fmt.Sprintf("Cancel order %s", o.OrderNumber)
				},
				run: func(ctx context.Context, o *models.Order) error {
					return svc.Cancel(ctx, o.ID)
				},
			},
		},
	})
}

// ── Inventory ───────────────────────────────────────────────────────────────

func productForm(title string, p *models.Product) *formModel {
	var cur models.Product
	if p != nil {
		cur = *p
	}
	price, qty := "", ""
	if p != nil {
		price = money(cur.Price)
		qty = strconv.Itoa(cur.Quantity)
	}
	status := string(cur.Status)
	if status == "" {
		status = string(models.ProductActive)
	}
	return newFormModel(title,
		formField{label: "SKU", value: cur.SKU},
		formField{label: "Name", value: cur.Name},
		formField{label: "Description", value: cur.Description},
		formField{label: "Price", value: price},
		formField{label: "Quantity", value: qty},
		formField{label: "Status", value: status, placeholder: "ACTIVE, INACTIVE or DISCONTINUED"},
	)
}

func productRequest(v formValues) (models.ProductRequest, error) {
	if err := required(v, "SKU", "Name"); err != nil {
		return models.ProductRequest{}, err
	}
	price, err := parseAmount(v, "Price")
	if err != nil {
		return models.ProductRequest{}, err
	}
	qty, err := parseCount(v, "Quantity")
	if err != nil {
		return models.ProductRequest{}, err
	}

	status := models.ProductStatus(strings.ToUpper(v.get("Status")))
	switch status {
	case models.ProductActive, models.ProductInactive, models.ProductDiscontinued:
	default:
		return models.ProductRequest{}, invalid("unknown status %q", v.get("Status"))
	}

	return models.ProductRequest{
		SKU:         v.get("SKU"),
		Name:        v.get("Name"),
		Description: v.get("Description"),
		Price:       price,
		Quantity:    qty,
		Status:      status,
	}, nil
}

func newInventoryPage(ctx context.Context, session service.SessionService, svc *service.InventoryService) *listPage[models.Product] {
	return newListPage(ctx, session, listPageConfig[models.Product]{
		screen: access.ScreenInventory,
		title:  "INVENTORY",
		ctrl:   svc.ListController,
		id:     func(p models.Product) int64 { return p.ID },
		columns: []column[models.Product]{
			{"ID", func(p models.Product) string { return strconv.FormatInt(p.ID, 10) }},
			{"SKU", func(p models.Product) string { return p.SKU }},
			{"Name", func(p models.Product) string { return p.Name }},
			{"Price", func(p models.Product) string { return money(p.Price) }},
			{"Qty", func(p models.Product) string {
				if svc.LowStock(p) {
					return warningStyle.Render(strconv.Itoa(p.Quantity))
				}
				return strconv.Itoa(p.Quantity)
			}},
			{"Status", func(p models.Product) string { return string(p.Status) }},
		},
		filters: []filterSpec{
			{name: service.FilterProductStatus, label: "Status", values: []string{
				service.FilterAll, string(models.ProductActive), string(models.ProductInactive), string(models.ProductDiscontinued),
			}},
			{name: service.FilterLowStock, label: "Stock", values: []string{service.FilterAll, service.LowStockOnly}},
		},
		actions: []listAction[models.Product]{
			{
				key:   "n",
				label: "new",
				allow: adminOnly,
				done:  "Product created",
				form:  func(*models.Product) *formModel { return productForm("NEW PRODUCT", nil) },
				submit: func(ctx context.Context, _ *models.Product, v formValues) error {
					req, err := productRequest(v)
					if err != nil {
						return err
					}
					return svc.Create(ctx, req)
				},
			},
			{
				key:       "e",
				label:     "edit",
				allow:     adminOnly,
				needsItem: true,
				done:      "Product updated",
				form:      func(p *models.Product) *formModel { return productForm("EDIT PRODUCT", p) },
				submit: func(ctx context.Context, p *models.Product, v formValues) error {
					req, err := productRequest(v)
					if err != nil {
						return err
					}
					return svc.Update(ctx, p.ID, req)
				},
			},
			{
				key:       "t",
				label:     "toggle status",
				allow:     moderatorPlus,
				needsItem: true,
				done:      "Product status updated",
				run: func(ctx context.Context, p *models.Product) error {
					return svc.ToggleStatus(ctx, p.ID)
				},
			},
			{
				key:       "d",
				label:     "delete",
				allow:     adminOnly,
				needsItem: true,
				done:      "Product deleted",
				confirm: func(p *models.Product) string {
					return fmt.Sprintf("Delete product %s", p.Name)
				},
				run: func(ctx context.Context, p *models.Product) error {
					return svc.Delete(ctx, p.ID)
				},
			},
		},
	})
}

// ── Notifications ───────────────────────────────────────────────────────────

func newNotificationsPage(ctx context.Context, session service.SessionService, svc *service.NotificationsService) *listPage[models.Notification] {
	return newListPage(ctx, session, listPageConfig[models.Notification]{
		screen:  access.ScreenNotifications,
		title:   "NOTIFICATIONS",
		ctrl:    svc.ListController,
		refresh: svc.Refresh,
		id:      func(n models.Notification) int64 { return n.ID },
		columns: []column[models.Notification]{
			{"", func(n models.Notification) string {
				if n.IsRead {
					return " "
				}
				return "•"
			}},
			{"Title", func(n models.Notification) string { return n.Title }},
			{"Message", func(n models.Notification) string { return n.Message }},
			{"Type", func(n models.Notification) string { return n.Type }},
			{"Received", func(n models.Notification) string { return formatTime(n.CreatedAt) }},
		},
		filters: []filterSpec{
			{name: service.FilterNotificationStatus, label: "Status", values: []string{service.FilterAll, service.UnreadOnly}},
			{name: service.FilterNotificationType, label: "Type", values: []string{service.FilterAll, "INFO", "WARNING", "ORDER", "SYSTEM"}},
		},
		actions: []listAction[models.Notification]{
			{
				key:       "m",
				label:     "mark read",
				needsItem: true,
				done:      "Marked as read",
				run: func(ctx context.Context, n *models.Notification) error {
					return svc.MarkRead(ctx, n.ID)
				},
			},
			{
				key:   "M",
				label: "mark all read",
				done:  "All notifications marked as read",
				run: func(ctx context.Context, _ *models.Notification) error {
					return svc.MarkAllRead(ctx)
				},
			},
			{
				key:       "d",
				label:     "delete",
				needsItem: true,
				done:      "Notification deleted",
				run: func(ctx context.Context, n *models.Notification) error {
					return svc.Delete(ctx, n.ID)
				},
			},
			{
				key:   "D",
				label: "delete selected",
				done:  "Selected notifications deleted",
				confirm: func(*models.Notification) string {
					return fmt.Sprintf("Delete %d notifications", len(svc.Selected()))
				},
				run: func(ctx context.Context, _ *models.Notification) error {
					return svc.DeleteSelected(ctx)
				},
			},
		},
	})
}
