// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the operator-facing message catalogue of the console.
//
// Backend validation messages are shown verbatim. The Msg* constants below
// are the per-operation fallbacks used when the backend sends none.
package app

const (
	MsgLoginFailed          = "Login failed"
	MsgRegistrationFailed   = "Registration failed"
	MsgForgotPasswordFailed = "Failed to send password reset email"
	MsgResetPasswordFailed  = "Failed to reset password"

	// MsgSessionExpired is shown on the login screen after a refresh failed.
	MsgSessionExpired = "Your session has expired. Please sign in again."

	// MsgServiceUnavailable is shown for transport failures.
	MsgServiceUnavailable = "Service unavailable. Press r to retry."

	// MsgAccessDenied is the fallback content of guarded content.
	MsgAccessDenied = "You do not have permission to view this content."

	MsgPerformActionFailed = "Failed to perform action"
	MsgBulkActionFailed    = "Failed to perform bulk action"
)

// Users.
const (
	MsgFetchUsersFailed   = "Failed to fetch users"
	MsgCreateUserFailed   = "Failed to create user"
	MsgDeleteUserFailed   = "Failed to delete user"
	MsgToggleStatusFailed = "Failed to update user status"
)

// Orders.
const (
	MsgFetchOrdersFailed = "Failed to fetch orders"
	MsgCreateOrderFailed = "Failed to create order"
	MsgUpdateOrderFailed = "Failed to update order status"
	MsgCancelOrderFailed = "Failed to cancel order"
)

// Inventory.
const (
	MsgFetchProductsFailed = "Failed to fetch products"
	MsgCreateProductFailed = "Failed to create product"
	MsgUpdateProductFailed = "Failed to update product"
	MsgDeleteProductFailed = "Failed to delete product"
	MsgApproveFailed       = "Failed to approve product"
	MsgRejectFailed        = "Failed to reject product"
)

// Notifications.
const (
	MsgFetchNotificationsFailed = "Failed to fetch notifications"
	MsgMarkReadFailed           = "Failed to mark notification as read"
	MsgDeleteNotificationFailed = "Failed to delete notification"
)

// Profile.
const (
	MsgLoadProfileFailed   = "Failed to load profile"
	MsgUpdateProfileFailed = "Failed to update profile"
	MsgUploadPictureFailed = "Failed to upload profile picture"
	MsgCopyFailed          = "Failed to copy to clipboard"
)
