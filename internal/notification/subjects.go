package notification

const subjectNewLeadFmt = "New lead: %s (%s)"
