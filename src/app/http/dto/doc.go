// Package dto contains Data Transfer Objects for HTTP requests and responses.
//
// DTOs are separate from domain entities to:
//   - Control what data is exposed in the API
//   - Handle JSON serialization/deserialization, including the accepted date formats
//   - Restrict update payloads to the mutable fields
//
// Naming convention:
//   - Request types: <Action><Resource>Request (e.g., CreateEmployeeRequest)
//   - Response types: <Resource>Response (e.g., EmployeeResponse)
//
// Example:
//
//	var req dto.CreateEmployeeRequest
//	if err := c.ShouldBindJSON(&req); err != nil {
//	    response.BindError(c, err, requestID)
//	    return
//	}
//	e, err := svc.Create(ctx, req.ToInput())
//	...
//	response.Created(c, dto.EmployeeResponse{}.FromDomain(e))
package dto
