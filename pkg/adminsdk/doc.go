/*
Package adminsdk provides a client SDK for the user-management service.

# Overview

The service keeps one screen per session: a selected group, a search term, the
group's users with their roles, an add-user dialog and a queue of
notifications. A Client holds the session (as a cookie and the X-Session-ID
header) and drives that screen over the JSON API:

	client := adminsdk.NewClient("http://localhost:8080")

	screen, err := client.GetScreen(ctx)          // bootstraps the session
	_, err = client.SelectGroup(ctx, "Product")
	_, err = client.SetSearch(ctx, "aaron")

Role toggles are asynchronous. Without Wait the server answers 202 and the
outcome arrives later as a notification; with Wait the call blocks until the
remote update resolves:

	res, err := client.ToggleRole(ctx, adminsdk.ToggleRequest{
		Email:   "sarah.j@example.com",
		Role:    "Write",
		Checked: true,
		Wait:    true,
	})

# Errors

Non-2xx responses are returned as *APIError. Use errors.As to inspect the
code, or the Is helpers for the common cases:

	var apiErr *adminsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == adminsdk.ErrorCodeToggleInFlight {
		// try again once the current update resolves
	}
*/
package adminsdk
