package irc

import "fmt"

// Response is a three-digit numeric reply code. The IRC protocol uses
// numerics both for machine-readable successes (registration replies,
// WHOIS detail lines) and for errors (the 400-599 range), so Response
// carries a Category rather than splitting into two Go types.
type Response int

// String renders r as the zero-padded three-digit wire form, e.g. "1" -> "001".
func (r Response) String() string {
	return fmt.Sprintf("%03d", int(r))
}

// Command renders r as a Command for code that matches against
// Message.Command rather than a bare numeric.
func (r Response) Command() Command {
	return Command(r.String())
}

// Category classifies a numeric into one of the broad protocol bands:
// registration, reply, error, extended, or SASL.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryRegistration
	CategoryReply
	CategoryError
	CategoryExtended
	CategorySASL
)

// Category returns the protocol band r falls into, based on its
// numeric range alone; every code in 900-999 is CategorySASL.
func (r Response) Category() Category {
	switch {
	case r >= 900 && r <= 999:
		return CategorySASL
	case r >= 1 && r <= 99:
		return CategoryRegistration
	case r >= 200 && r <= 399:
		return CategoryReply
	case r >= 400 && r <= 599:
		return CategoryError
	case r >= 600 && r <= 799:
		return CategoryExtended
	default:
		return CategoryUnknown
	}
}

// IsError reports whether r is conventionally an error reply.
func (r Response) IsError() bool {
	return r.Category() == CategoryError || (r.Category() == CategorySASL && r.isSaslError())
}

func (r Response) isSaslError() bool {
	switch r {
	case ErrNickLocked, ErrSaslFail, ErrSaslTooLong, ErrSaslAbort, ErrSaslAlready:
		return true
	default:
		return false
	}
}

// Named numeric reply codes. Names follow the conventional RPL_/ERR_
// prefixes from RFC 1459/2812 and the IRCv3 working group documents,
// translated to Go's exported-identifier casing (Rpl.../Err...).
const (
	RplWelcome           Response = 1
	RplYourHost          Response = 2
	RplCreated           Response = 3
	RplMyInfo            Response = 4
	RplISupport          Response = 5
	RplBounce            Response = 10
	RplYourID            Response = 42
	RplTraceLink         Response = 200
	RplTraceConnecting   Response = 201
	RplTraceHandshake    Response = 202
	RplTraceUnknown      Response = 203
	RplTraceOperator     Response = 204
	RplTraceUser         Response = 205
	RplTraceServer       Response = 206
	RplTraceService      Response = 207
	RplTraceNewType      Response = 208
	RplTraceClass        Response = 209
	RplTraceReconnect    Response = 210
	RplStatsLinkInfo     Response = 211
	RplStatsCommands     Response = 212
	RplStatsKLine        Response = 216
	RplEndOfStats        Response = 219
	RplStatsDLine        Response = 220
	RplUModeIs           Response = 221
	RplStatsShun         Response = 226
	RplServList          Response = 234
	RplServListEnd       Response = 235
	RplStatsUptime       Response = 242
	RplStatsOLine        Response = 243
	RplLUserClient       Response = 251
	RplLUserOp           Response = 252
	RplLUserUnknown      Response = 253
	RplLUserChannels     Response = 254
	RplLUserMe           Response = 255
	RplAdminMe           Response = 256
	RplAdminLoc1         Response = 257
	RplAdminLoc2         Response = 258
	RplAdminEmail        Response = 259
	RplTraceLog          Response = 261
	RplTraceEnd          Response = 262
	RplTryAgain          Response = 263
	RplLocalUsers        Response = 265
	RplGlobalUsers       Response = 266
	RplWhoisCertFP       Response = 276
	RplNone              Response = 300
	RplAway              Response = 301
	RplUserHost          Response = 302
	RplIsOn              Response = 303
	RplUnAway            Response = 305
	RplNowAway           Response = 306
	RplWhoisUser         Response = 311
	RplWhoisServer       Response = 312
	RplWhoisOperator     Response = 313
	RplWhowasUser        Response = 314
	RplEndOfWho          Response = 315
	RplWhoisIdle         Response = 317
	RplEndOfWhois        Response = 318
	RplWhoisChannels     Response = 319
	RplListStart         Response = 321
	RplList              Response = 322
	RplListEnd           Response = 323
	RplChannelModeIs     Response = 324
	RplUniqOpIs          Response = 325
	RplCreationTime      Response = 329
	RplWhoisAccount      Response = 330
	RplNoTopic           Response = 331
	RplTopic             Response = 332
	RplTopicWhoTime      Response = 333
	RplWhoisBot          Response = 335
	RplWhoisActually     Response = 338
	RplUserIP            Response = 340
	RplInviting          Response = 341
	RplSummoning         Response = 342
	RplInviteList        Response = 346
	RplEndOfInviteList   Response = 347
	RplExceptList        Response = 348
	RplEndOfExceptList   Response = 349
	RplVersion           Response = 351
	RplWhoReply          Response = 352
	RplNamReply          Response = 353
	RplWhoSpcRpl         Response = 354
	RplLinks             Response = 364
	RplEndOfLinks        Response = 365
	RplEndOfNames        Response = 366
	RplBanList           Response = 367
	RplEndOfBanList      Response = 368
	RplEndOfWhowas       Response = 369
	RplInfo              Response = 371
	RplMOTD              Response = 372
	RplEndOfInfo         Response = 374
	RplMOTDStart         Response = 375
	RplEndOfMOTD         Response = 376
	RplWhoisHost         Response = 378
	RplWhoisModes        Response = 379
	RplYoureOper         Response = 381
	RplRehashing         Response = 382
	RplYoureService      Response = 383
	RplTime              Response = 391
	RplUsersStart        Response = 392
	RplUsers             Response = 393
	RplEndOfUsers        Response = 394
	RplNoUsers           Response = 395
	RplHostHidden        Response = 396
	ErrUnknownError      Response = 400
	ErrNoSuchNick        Response = 401
	ErrNoSuchServer      Response = 402
	ErrNoSuchChannel     Response = 403
	ErrCannotSendToChan  Response = 404
	ErrTooManyChannels   Response = 405
	ErrWasNoSuchNick     Response = 406
	ErrTooManyTargets    Response = 407
	ErrNoSuchService     Response = 408
	ErrNoOrigin          Response = 409
	ErrNoRecipient       Response = 411
	ErrNoTextToSend      Response = 412
	ErrNoToplevel        Response = 413
	ErrWildToplevel      Response = 414
	ErrBadMask           Response = 415
	ErrInputTooLong      Response = 417
	ErrUnknownCommand    Response = 421
	ErrNoMOTD            Response = 422
	ErrNoAdminInfo       Response = 423
	ErrFileError         Response = 424
	ErrNoNicknameGiven   Response = 431
	ErrErroneousNickname Response = 432
	ErrNicknameInUse     Response = 433
	ErrNickCollision     Response = 436
	ErrUnavailResource   Response = 437
	ErrUserNotInChannel  Response = 441
	ErrNotOnChannel      Response = 442
	ErrUserOnChannel     Response = 443
	ErrNoLogin           Response = 444
	ErrSummonDisabled    Response = 445
	ErrUsersDisabled     Response = 446
	ErrNotRegistered     Response = 451
	ErrNeedMoreParams    Response = 461
	ErrAlreadyRegistered Response = 462
	ErrNoPermForHost     Response = 463
	ErrPasswdMismatch    Response = 464
	ErrYoureBannedCreep  Response = 465
	ErrYouWillBeBanned   Response = 466
	ErrKeySet            Response = 467
	ErrChannelIsFull     Response = 471
	ErrUnknownMode       Response = 472
	ErrInviteOnlyChan    Response = 473
	ErrBannedFromChan    Response = 474
	ErrBadChannelKey     Response = 475
	ErrBadChanMask       Response = 476
	ErrNeedReggedNick    Response = 477
	ErrBanListFull       Response = 478
	ErrBadChanName       Response = 479
	ErrNoPrivileges      Response = 481
	ErrChanOPrivsNeeded  Response = 482
	ErrCantKillServer    Response = 483
	ErrRestricted        Response = 484
	ErrUniqOPrivsNeeded  Response = 485
	ErrSecureOnlyChan    Response = 489
	ErrNoOperHost        Response = 491
	ErrUModeUnknownFlag  Response = 501
	ErrUsersDontMatch    Response = 502
	ErrHelpNotFound      Response = 524
	RplMap               Response = 606
	RplMapEnd            Response = 607
	RplRuleStart         Response = 632
	RplRules             Response = 633
	RplEndOfRules        Response = 634
	ErrNoRules           Response = 635
	RplStatsPLine        Response = 646
	RplWhoisSecure       Response = 671
	RplHelpStart         Response = 704
	RplHelpTxt           Response = 705
	RplEndOfHelp         Response = 706
	RplKnock             Response = 710
	RplKnockDelivered    Response = 711
	ErrTooManyKnock      Response = 712
	ErrChanOpen          Response = 713
	ErrKnockOnChan       Response = 714
	ErrNoPrivs           Response = 723
	RplQuietList         Response = 728
	RplEndOfQuietList    Response = 729
	RplMonOnline         Response = 730
	RplMonOffline        Response = 731
	RplMonList           Response = 732
	RplEndOfMonList      Response = 733
	ErrMonListFull       Response = 734
	RplWhoisKeyValue     Response = 760
	RplKeyValue          Response = 761
	ErrTargetInvalid     Response = 765
	ErrNoMatchingKey     Response = 766
	ErrKeyInvalid        Response = 767
	ErrKeyNotSet         Response = 768
	ErrKeyNoPermission   Response = 769
	RplLoggedIn          Response = 900
	RplLoggedOut         Response = 901
	ErrNickLocked        Response = 902
	RplSaslSuccess       Response = 903
	ErrSaslFail          Response = 904
	ErrSaslTooLong       Response = 905
	ErrSaslAbort         Response = 906
	ErrSaslAlready       Response = 907
	RplSaslMechs         Response = 908
)

// allResponses lists every named numeric above, in declaration order,
// for buildResponseTable to index by wire token.
var allResponses = []Response{
	RplWelcome, RplYourHost, RplCreated, RplMyInfo, RplISupport, RplBounce,
	RplYourID, RplTraceLink, RplTraceConnecting, RplTraceHandshake,
	RplTraceUnknown, RplTraceOperator, RplTraceUser, RplTraceServer,
	RplTraceService, RplTraceNewType, RplTraceClass, RplTraceReconnect,
	RplStatsLinkInfo, RplStatsCommands, RplStatsKLine, RplEndOfStats,
	RplStatsDLine, RplUModeIs, RplStatsShun, RplServList, RplServListEnd,
	RplStatsUptime, RplStatsOLine, RplLUserClient, RplLUserOp,
	RplLUserUnknown, RplLUserChannels, RplLUserMe, RplAdminMe,
	RplAdminLoc1, RplAdminLoc2, RplAdminEmail, RplTraceLog, RplTraceEnd,
	RplTryAgain, RplLocalUsers, RplGlobalUsers, RplWhoisCertFP, RplNone,
	RplAway, RplUserHost, RplIsOn, RplUnAway, RplNowAway, RplWhoisUser,
	RplWhoisServer, RplWhoisOperator, RplWhowasUser, RplEndOfWho,
	RplWhoisIdle, RplEndOfWhois, RplWhoisChannels, RplListStart, RplList,
	RplListEnd, RplChannelModeIs, RplUniqOpIs, RplCreationTime,
	RplWhoisAccount, RplNoTopic, RplTopic, RplTopicWhoTime, RplWhoisBot,
	RplWhoisActually, RplUserIP, RplInviting, RplSummoning, RplInviteList,
	RplEndOfInviteList, RplExceptList, RplEndOfExceptList, RplVersion,
	RplWhoReply, RplNamReply, RplWhoSpcRpl, RplLinks, RplEndOfLinks,
	RplEndOfNames, RplBanList, RplEndOfBanList, RplEndOfWhowas, RplInfo,
	RplMOTD, RplEndOfInfo, RplMOTDStart, RplEndOfMOTD, RplWhoisHost,
	RplWhoisModes, RplYoureOper, RplRehashing, RplYoureService, RplTime,
	RplUsersStart, RplUsers, RplEndOfUsers, RplNoUsers, RplHostHidden,
	ErrUnknownError, ErrNoSuchNick, ErrNoSuchServer, ErrNoSuchChannel,
	ErrCannotSendToChan, ErrTooManyChannels, ErrWasNoSuchNick,
	ErrTooManyTargets, ErrNoSuchService, ErrNoOrigin, ErrNoRecipient,
	ErrNoTextToSend, ErrNoToplevel, ErrWildToplevel, ErrBadMask,
	ErrInputTooLong, ErrUnknownCommand, ErrNoMOTD, ErrNoAdminInfo,
	ErrFileError, ErrNoNicknameGiven, ErrErroneousNickname,
	ErrNicknameInUse, ErrNickCollision, ErrUnavailResource,
	ErrUserNotInChannel, ErrNotOnChannel, ErrUserOnChannel, ErrNoLogin,
	ErrSummonDisabled, ErrUsersDisabled, ErrNotRegistered,
	ErrNeedMoreParams, ErrAlreadyRegistered, ErrNoPermForHost,
	ErrPasswdMismatch, ErrYoureBannedCreep, ErrYouWillBeBanned, ErrKeySet,
	ErrChannelIsFull, ErrUnknownMode, ErrInviteOnlyChan, ErrBannedFromChan,
	ErrBadChannelKey, ErrBadChanMask, ErrNeedReggedNick, ErrBanListFull,
	ErrBadChanName, ErrNoPrivileges, ErrChanOPrivsNeeded,
	ErrCantKillServer, ErrRestricted, ErrUniqOPrivsNeeded,
	ErrSecureOnlyChan, ErrNoOperHost, ErrUModeUnknownFlag,
	ErrUsersDontMatch, ErrHelpNotFound, RplMap, RplMapEnd, RplRuleStart,
	RplRules, RplEndOfRules, ErrNoRules, RplStatsPLine, RplWhoisSecure,
	RplHelpStart, RplHelpTxt, RplEndOfHelp, RplKnock, RplKnockDelivered,
	ErrTooManyKnock, ErrChanOpen, ErrKnockOnChan, ErrNoPrivs, RplQuietList,
	RplEndOfQuietList, RplMonOnline, RplMonOffline, RplMonList,
	RplEndOfMonList, ErrMonListFull, RplWhoisKeyValue, RplKeyValue,
	ErrTargetInvalid, ErrNoMatchingKey, ErrKeyInvalid, ErrKeyNotSet,
	ErrKeyNoPermission, RplLoggedIn, RplLoggedOut, ErrNickLocked,
	RplSaslSuccess, ErrSaslFail, ErrSaslTooLong, ErrSaslAbort,
	ErrSaslAlready, RplSaslMechs,
}

// responseByNumeric maps the three-digit wire token to its Response.
// Built once at init from allResponses so that Classify's numeric
// dispatch never needs a parallel hand-maintained table.
var responseByNumeric = buildResponseTable()

func lookupResponse(token string) (Response, bool) {
	r, ok := responseByNumeric[token]
	return r, ok
}

func buildResponseTable() map[string]Response {
	m := make(map[string]Response, len(allResponses))
	for _, r := range allResponses {
		m[r.String()] = r
	}
	return m
}
