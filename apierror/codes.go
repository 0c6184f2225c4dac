package apierror

const (
	NamespaceNameless    = "nameless"
	NamespaceCore        = "core"
	NamespaceDiscord     = "discord"
	NamespaceStore       = "store"
	NamespaceSuggestions = "suggestions"
	NamespaceWebsend     = "websend"
	NamespaceForum       = "forum"
)

// nameless: API-level failures.
var (
	ErrAPIDisabled         = def(NamespaceNameless, "api_is_disabled", "the website API is disabled")
	ErrUnknownError        = def(NamespaceNameless, "unknown_error", "the website reported an unknown error")
	ErrNotAuthorized       = def(NamespaceNameless, "not_authorized", "the API key is not authorized for this action")
	ErrInvalidAPIKey       = def(NamespaceNameless, "invalid_api_key", "the API key is invalid")
	ErrInvalidAPIMethod    = def(NamespaceNameless, "invalid_api_method", "the API method does not exist")
	ErrCannotFindUser      = def(NamespaceNameless, "cannot_find_user", "the user could not be found")
	ErrInvalidPostContents = def(NamespaceNameless, "invalid_post_contents", "the request body was rejected")
	ErrInvalidGetContents  = def(NamespaceNameless, "invalid_get_contents", "the request parameters were rejected")
	ErrEndpointNotFound    = def(NamespaceNameless, "endpoint_not_found", "the endpoint does not exist")
)

// core: users, groups, reports and integrations.
var (
	ErrInvalidUsername              = def(NamespaceCore, "invalid_username", "the username is invalid")
	ErrUsernameAlreadyExists        = def(NamespaceCore, "username_already_exists", "the username is already taken")
	ErrInvalidEmailAddress          = def(NamespaceCore, "invalid_email_address", "the email address is invalid")
	ErrEmailAlreadyExists           = def(NamespaceCore, "email_already_exists", "the email address is already in use")
	ErrUnableToFindGroup            = def(NamespaceCore, "unable_to_find_group", "the group could not be found")
	ErrInvalidCode                  = def(NamespaceCore, "invalid_code", "the verification code is invalid")
	ErrUserAlreadyActive            = def(NamespaceCore, "user_already_active", "the user is already verified")
	ErrUnableToUpdateUsername       = def(NamespaceCore, "unable_to_update_username", "the username could not be updated")
	ErrBannedFromWebsite            = def(NamespaceCore, "banned_from_website", "the user is banned from the website")
	ErrReportContentTooLong         = def(NamespaceCore, "report_content_too_long", "the report content is too long")
	ErrCannotReportYourself         = def(NamespaceCore, "cannot_report_yourself", "users cannot report themselves")
	ErrOpenReportAlready            = def(NamespaceCore, "open_report_already", "an open report already exists")
	ErrUnableToFindAnnouncement     = def(NamespaceCore, "unable_to_find_announcement", "the announcement could not be found")
	ErrInvalidIntegration           = def(NamespaceCore, "invalid_integration", "the integration does not exist")
	ErrIntegrationIdentifierErrors  = def(NamespaceCore, "integration_identifier_errors", "the integration identifier is invalid or taken")
	ErrIntegrationUsernameErrors    = def(NamespaceCore, "integration_username_errors", "the integration username is invalid or taken")
	ErrIntegrationAlreadyVerified   = def(NamespaceCore, "integration_already_verified", "the integration is already verified")
	ErrUserIntegrationNotLinked     = def(NamespaceCore, "user_integration_not_linked", "the user has not linked this integration")
	ErrRegistrationEmailFailed      = def(NamespaceCore, "unable_to_send_registration_email", "the registration email could not be sent")
	ErrUnableToCreateReport         = def(NamespaceCore, "unable_to_create_report", "the report could not be created")
	ErrUnableToUpdateGroupSettings  = def(NamespaceCore, "unable_to_update_group_settings", "the group settings could not be updated")
	ErrUnableToFindProfileField     = def(NamespaceCore, "unable_to_find_profile_field", "the profile field could not be found")
	ErrRegistrationRequiresEmail    = def(NamespaceCore, "email_verification_required", "registration requires email verification")
	ErrIntegrationIdentifierInvalid = def(NamespaceCore, "invalid_integration_identifier", "the integration identifier is malformed")
)

// discord
var (
	ErrDiscordIntegrationDisabled = def(NamespaceDiscord, "discord_integration_disabled", "the discord integration is disabled")
	ErrDiscordUnableToSetRoles    = def(NamespaceDiscord, "unable_to_set_discord_roles", "discord roles could not be updated")
	ErrDiscordInvalidBotURL       = def(NamespaceDiscord, "invalid_discord_bot_url", "the discord bot url is invalid")
	ErrDiscordInvalidGuildID      = def(NamespaceDiscord, "invalid_guild_id", "the discord guild id is invalid")
	ErrDiscordInvalidBotUsername  = def(NamespaceDiscord, "invalid_discord_bot_username", "the discord bot username is invalid")
)

// store
var (
	ErrStoreCannotFindCustomer  = def(NamespaceStore, "cannot_find_customer", "the store customer could not be found")
	ErrStoreCannotFindProduct   = def(NamespaceStore, "cannot_find_product", "the store product could not be found")
	ErrStoreInvalidCredits      = def(NamespaceStore, "invalid_credits_amount", "the credits amount is invalid")
	ErrStoreNotEnoughCredits    = def(NamespaceStore, "not_enough_credits", "the customer does not have enough credits")
	ErrStoreCannotFindPayment   = def(NamespaceStore, "cannot_find_payment", "the payment could not be found")
	ErrStoreCannotFindCategory  = def(NamespaceStore, "cannot_find_category", "the store category could not be found")
	ErrStoreCannotFindGateway   = def(NamespaceStore, "cannot_find_gateway", "the payment gateway could not be found")
	ErrStoreInvalidCustomerData = def(NamespaceStore, "invalid_customer_data", "the customer data is invalid")
)

// suggestions
var (
	ErrSuggestionNotFound    = def(NamespaceSuggestions, "unable_to_find_suggestion", "the suggestion could not be found")
	ErrSuggestionCannotLike  = def(NamespaceSuggestions, "cannot_like_own_suggestion", "users cannot like their own suggestion")
	ErrSuggestionInvalidVote = def(NamespaceSuggestions, "invalid_vote", "the vote is invalid")
)

// websend
var (
	ErrWebsendInvalidServer = def(NamespaceWebsend, "invalid_server_id", "the websend server id is invalid")
	ErrWebsendInvalidLines  = def(NamespaceWebsend, "invalid_console_lines", "the console lines are invalid")
)

// forum
var (
	ErrForumUnableToFindTopic = def(NamespaceForum, "unable_to_find_topic", "the forum topic could not be found")
	ErrForumUnableToFindPost  = def(NamespaceForum, "unable_to_find_post", "the forum post could not be found")
)

// known lists every classified error. Adding a server error means adding one
// entry here.
var known = []*Error{
	ErrAPIDisabled,
	ErrUnknownError,
	ErrNotAuthorized,
	ErrInvalidAPIKey,
	ErrInvalidAPIMethod,
	ErrCannotFindUser,
	ErrInvalidPostContents,
	ErrInvalidGetContents,
	ErrEndpointNotFound,

	ErrInvalidUsername,
	ErrUsernameAlreadyExists,
	ErrInvalidEmailAddress,
	ErrEmailAlreadyExists,
	ErrUnableToFindGroup,
	ErrInvalidCode,
	ErrUserAlreadyActive,
	ErrUnableToUpdateUsername,
	ErrBannedFromWebsite,
	ErrReportContentTooLong,
	ErrCannotReportYourself,
	ErrOpenReportAlready,
	ErrUnableToFindAnnouncement,
	ErrInvalidIntegration,
	ErrIntegrationIdentifierErrors,
	ErrIntegrationUsernameErrors,
	ErrIntegrationAlreadyVerified,
	ErrUserIntegrationNotLinked,
	ErrRegistrationEmailFailed,
	ErrUnableToCreateReport,
	ErrUnableToUpdateGroupSettings,
	ErrUnableToFindProfileField,
	ErrRegistrationRequiresEmail,
	ErrIntegrationIdentifierInvalid,

	ErrDiscordIntegrationDisabled,
	ErrDiscordUnableToSetRoles,
	ErrDiscordInvalidBotURL,
	ErrDiscordInvalidGuildID,
	ErrDiscordInvalidBotUsername,

	ErrStoreCannotFindCustomer,
	ErrStoreCannotFindProduct,
	ErrStoreInvalidCredits,
	ErrStoreNotEnoughCredits,
	ErrStoreCannotFindPayment,
	ErrStoreCannotFindCategory,
	ErrStoreCannotFindGateway,
	ErrStoreInvalidCustomerData,

	ErrSuggestionNotFound,
	ErrSuggestionCannotLike,
	ErrSuggestionInvalidVote,

	ErrWebsendInvalidServer,
	ErrWebsendInvalidLines,

	ErrForumUnableToFindTopic,
	ErrForumUnableToFindPost,
}

func def(namespace, code, message string) *Error {
	return &Error{Namespace: namespace, Code: code, Message: message}
}
