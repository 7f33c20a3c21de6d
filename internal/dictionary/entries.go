package dictionary

// DefaultRows is the built-in table. Order is significant: when two entries
// reach the same score the earlier one wins, so address components sit
// ahead of the generic location entry.
var DefaultRows = []Row{
	{
		Key:     "personal.firstName",
		Phrase:  "First Name",
		Pattern: `first\s*name|given\s*name|fname`,
		Selectors: []string{
			`#first_name`, `input[name="first_name"]`, `input[name="firstName"]`,
			`[autocomplete="given-name"]`, `[data-automation-id="legalNameSection_firstName"]`,
			`#user_name`, `input[name="job_application[first_name]"]`, `[name="name"]`,
			`input[name="candidate_name"]`, `input[name="user_name"]`, `#applicant\.firstName`,
			`input[name*="applicant"][name*="first"]`, `input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "personal.lastName",
		Phrase:  "Last Name",
		Pattern: `last\s*name|surname|lname|family\s*name`,
		Selectors: []string{
			`#last_name`, `input[name="last_name"]`, `input[name="lastName"]`,
			`[autocomplete="family-name"]`, `[data-automation-id="legalNameSection_lastName"]`,
			`input[name="job_application[last_name]"]`, `#applicant\.lastName`,
			`input[name*="applicant"][name*="last"]`, `input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "personal.fullName",
		Phrase:  "Full Name",
		Pattern: `^full\s*name|complete\s*name|legal\s*name|name\s*\(.*first.*last.*\)`,
		Selectors: []string{
			`input[name*="full"]`, `input[name*="fullname"]`, `input[name="name"]`,
			`input[name^="entry."][type="text"]`, `input[aria-label*="full name" i]`,
			`input[aria-label*="legal name" i]`,
		},
	},
	{
		Key:     "personal.email",
		Phrase:  "Email",
		Pattern: `email|e-mail`,
		Selectors: []string{
			`#email`, `input[name="email"]`, `[type="email"]`, `[autocomplete="email"]`,
			`[data-automation-id="email"]`, `#user_email`, `input[name="job_application[email]"]`,
			`#applicant\.email`, `input[name*="applicant"][name*="email"]`,
			`input[name^="entry."][type="email"]`,
		},
	},
	{
		Key:     "personal.phone",
		Phrase:  "Phone",
		Pattern: `phone(?!.*code)|mobile|contact\s*number|contact\s*no`,
		Selectors: []string{
			`#phone`, `input[name="phone"]`, `[type="tel"]`, `[autocomplete="tel"]`,
			`[data-automation-id="phone-number"]`, `#user_mobile`, `input[name="job_application[phone]"]`,
			`input[name="mobile"]`, `input[name="mobile_number"]`, `input[name="phone_no"]`,
			`input[name="contact_number"]`, `#applicant\.phoneNumber`,
			`input[name*="applicant"][name*="phone"]`, `input[name^="entry."][type="tel"]`,
			`input[aria-label*="contact" i]`, `input[aria-label*="phone" i]`,
			`input[aria-label*="mobile" i]`,
		},
	},
	{
		Key:     "personal.street",
		Phrase:  "Street",
		Pattern: `^address\s*line\s*1$|^street$|^address1$|^address$`,
		Selectors: []string{
			`input[name*="address"]`, `input[name*="street"]`, `[autocomplete="address-line1"]`,
			`[data-automation-id="addressSection_addressLine1"]`, `[data-automation-id="addressLine1"]`,
			`input[name^="entry."][type="text"]`, `textarea[name^="entry."]`,
		},
	},
	{
		Key:     "personal.city",
		Phrase:  "City",
		Pattern: `city|town|location\s*\(?city\)?`,
		Selectors: []string{
			`input[name*="city"]`, `input[name*="town"]`, `[autocomplete="address-level2"]`,
			`[data-automation-id="addressSection_city"]`, `[data-automation-id="city"]`,
			`#applicant\.city`, `input[name*="applicant"][name*="city"]`,
			`input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "personal.state",
		Phrase:  "State",
		Pattern: `state|province|region|county`,
		Selectors: []string{
			`input[name*="state"]`, `input[name*="province"]`, `[autocomplete="address-level1"]`,
			`[data-automation-id="addressSection_region"]`, `[data-automation-id="region"]`,
			`input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "personal.zip",
		Phrase:  "Zip Code",
		Pattern: `zip\s*code|postal\s*code|pincode|zip`,
		Selectors: []string{
			`input[name*="zip"]`, `input[name*="postal"]`, `[autocomplete="postal-code"]`,
			`[data-automation-id="addressSection_postalCode"]`, `[data-automation-id="postalCode"]`,
			`input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "personal.country",
		Phrase:  "Country",
		Pattern: `country`,
		Selectors: []string{
			`input[name*="country"]`, `select[name*="country"]`, `[autocomplete="country"]`,
			`[data-automation-id="addressSection_countryRegion"]`, `[data-automation-id="countryRegion"]`,
			`input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "personal.location",
		Phrase:  "Location",
		Pattern: `location|residence`,
		Selectors: []string{
			`#address`, `#location`, `[autocomplete="address-level2"]`,
			`input[name="job_application[location]"]`, `input[name="current_location"]`,
			`input[name="current_city"]`, `input[name="job_location"]`, `#applicant\.address`,
			`input[name*="applicant"][name*="address"]`, `input[name*="applicant"][name*="location"]`,
			`input[name^="entry."][type="text"]`, `textarea[name^="entry."]`,
		},
	},
	{
		Key:     "personal.dob",
		Phrase:  "Date of Birth",
		Pattern: `date\s*of\s*birth|birth\s*date|\bdob\b`,
		Selectors: []string{
			`input[name*="dob"]`, `input[name*="birth"]`, `[autocomplete="bday"]`,
			`[data-automation-id="dateOfBirth"]`,
		},
	},
	{
		Key:     "links.linkedin",
		Phrase:  "LinkedIn",
		Pattern: `linkedin`,
		Selectors: []string{
			`input[name*="linkedin"]`, `[id*="linkedin"]`,
			`input[name="job_application[answers][][text_value]"]`,
			`input[name*="applicant"][name*="linkedin"]`, `input[name^="entry."][type="url"]`,
			`input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "links.github",
		Phrase:  "GitHub",
		Pattern: `github`,
		Selectors: []string{
			`input[name*="github"]`, `[id*="github"]`, `input[name^="entry."][type="url"]`,
			`input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "links.portfolio",
		Phrase:  "Portfolio",
		Pattern: `portfolio|website|personal\s*site`,
		Selectors: []string{
			`input[name*="website"]`, `input[name*="portfolio"]`, `[id*="portfolio"]`,
			`input[name="urls[Portfolio]"]`, `input[name^="entry."][type="url"]`,
			`input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "links.twitter",
		Phrase:  "Twitter",
		Pattern: `twitter|x\.com`,
		Selectors: []string{
			`input[name*="twitter"]`, `input[name^="entry."][type="url"]`,
			`input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "preferences.noticePeriod",
		Phrase:  "Notice Period",
		Pattern: `notice\s*period|how\s*soon`,
		Selectors: []string{
			`input[name*="notice"]`, `select[name*="notice"]`, `input[name="notice_period"]`,
			`input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "preferences.currentCtc",
		Phrase:  "Current CTC",
		Pattern: `current\s*ctc|current\s*salary|current\s*compensation|ctc\s*\(|your\s*ctc`,
		Selectors: []string{
			`input[name*="ctc"]`, `input[name*="salary"]`, `input[name="current_ctc"]`,
			`input[name^="entry."][type="text"]`, `input[name^="entry."][type="number"]`,
		},
	},
	{
		Key:     "preferences.expectedCtc",
		Phrase:  "Expected CTC",
		Pattern: `expected\s*ctc|expected\s*salary|expectation|expecting`,
		Selectors: []string{
			`input[name*="expected"]`, `input[name="expected_ctc"]`,
			`input[name^="entry."][type="text"]`, `input[name^="entry."][type="number"]`,
		},
	},
	{
		Key:     "preferences.experience",
		Phrase:  "Years of Experience",
		Pattern: `years\s*of\s*experience|total\s*experience|overall\s*years?\s*of\s*experience|how\s*much\s*is\s*your\s*overall|experience\s*\*`,
		Selectors: []string{
			`input[name*="experience"]`, `select[name*="experience"]`, `input[name="experience_years"]`,
			`input[name="total_experience"]`, `select[name="total_experience"]`,
			`input[name^="entry."][type="text"]`, `input[name^="entry."][type="number"]`,
		},
	},
	{
		Key:     "preferences.techExperience",
		Phrase:  "Experience in React",
		Pattern: `experience\s*in\s*(frontend|backend|react|angular|vue|node|python|java|\.net|full[\s-]?stack)`,
		Selectors: []string{
			`input[name*="frontend"]`, `input[name*="backend"]`, `input[name*="tech"]`,
			`input[name*="stack"]`, `input[name^="entry."][type="text"]`, `textarea[name^="entry."]`,
		},
	},
	{
		Key:     "education.school",
		Phrase:  "School",
		Pattern: `school|university|college|institution|board`,
		Selectors: []string{
			`input[name*="school"]`, `input[name*="university"]`, `input[name*="college"]`,
			`[id*="education"]`, `input[name="education[school_name]"]`,
			`input[name^="entry."][type="text"]`, `[data-automation-id="educationSection_school"]`,
			`[data-automation-id="school"]`,
		},
	},
	{
		Key:     "education.degree",
		Phrase:  "Degree",
		Pattern: `degree|qualification|certification`,
		Selectors: []string{
			`input[name*="degree"]`, `select[name*="degree"]`, `input[name="education[degree]"]`,
			`input[name^="entry."][type="text"]`, `[data-automation-id="educationSection_degree"]`,
			`[data-automation-id="degree"]`,
		},
	},
	{
		Key:     "education.field",
		Phrase:  "Major",
		Pattern: `major|field\s*of\s*study|specialization`,
		Selectors: []string{
			`input[name*="major"]`, `input[name*="field"]`, `input[name="education[discipline]"]`,
			`input[name^="entry."][type="text"]`, `[data-automation-id="educationSection_fieldOfStudy"]`,
			`[data-automation-id="fieldOfStudy"]`,
		},
	},
	{
		Key:     "education.grade",
		Phrase:  "GPA",
		Pattern: `\bgpa\b|cgpa|grade|percentage`,
		Selectors: []string{
			`input[name*="gpa"]`, `input[name*="grade"]`, `[data-automation-id="gradeAverage"]`,
		},
	},
	{
		Key:     "work.company",
		Phrase:  "Company",
		Pattern: `company|employer|organization|enter.*company`,
		Selectors: []string{
			`input[name*="company"]`, `input[name*="employer"]`, `input[id*="company"]`,
			`input[placeholder*="company" i]`, `input[aria-label*="company" i]`,
			`input[name="job_application[employment][][company_name]"]`, `input[name="org"]`,
			`input[name="current-company"]`, `input[name^="entry."][type="text"]`,
			`[data-automation-id="jobHistorySection_companyName"]`, `[data-automation-id="company"]`,
			`[data-automation-id="companyName"]`,
		},
	},
	{
		Key:     "work.title",
		Phrase:  "Job Title",
		Pattern: `job\s*title|position|designation|enter.*job|role(?!.*description|.*responsibilities)`,
		Selectors: []string{
			`input[name*="title"]`, `input[name*="role"]`, `input[name*="position"]`,
			`input[id*="job"][id*="title"]`, `input[id*="jobtitle"]`,
			`input[placeholder*="job title" i]`, `input[placeholder*="job" i][placeholder*="title" i]`,
			`input[aria-label*="job title" i]`, `input[name="job_application[employment][][title]"]`,
			`input[name^="entry."][type="text"]`, `[data-automation-id="jobHistorySection_title"]`,
			`[data-automation-id="jobTitle"]`, `[data-automation-id="title"]`,
		},
	},
	{
		Key:     "work.startDate",
		Phrase:  "Start Date",
		Pattern: `start\s*date|from`,
		Selectors: []string{
			`input[name*="start"]`, `select[name*="start"]`, `input[name*="from"]`, `select[name*="from"]`,
			`input[name="job_application[employment][][start_date]"]`, `input[name^="entry."][type="date"]`,
			`input[name^="entry."][type="text"]`, `[data-automation-id="jobHistorySection_startDate"]`,
			`[data-automation-id="startDate"]`,
		},
	},
	{
		Key:     "work.endDate",
		Phrase:  "End Date",
		Pattern: `end\s*date|to`,
		Selectors: []string{
			`input[name*="end"]`, `select[name*="end"]`, `input[name*="to"]`, `select[name*="to"]`,
			`input[name="job_application[employment][][end_date]"]`, `input[name^="entry."][type="date"]`,
			`input[name^="entry."][type="text"]`, `[data-automation-id="jobHistorySection_endDate"]`,
			`[data-automation-id="endDate"]`,
		},
	},
	{
		Key:     "work.description",
		Phrase:  "Description",
		Pattern: `role\s*description|description|responsibilities|duties`,
		Selectors: []string{
			`textarea[name*="description"]`, `textarea[name*="responsibilities"]`,
			`textarea[name="job_application[employment][][notes]"]`, `textarea[name^="entry."]`,
			`div[role="textbox"]`, `input[name*="description"]`,
			`[data-automation-id="jobHistorySection_description"]`, `[data-automation-id="description"]`,
		},
	},
	{
		Key:     "legal.authorized",
		Phrase:  "Legally Authorized",
		Pattern: `authorized\s*to\s*work|legally\s*authorized`,
		Selectors: []string{
			`input[name*="authorized"]`, `input[name*="legal"]`, `[data-automation-id*="authorized"]`,
			`input[name^="entry."]`,
		},
	},
	{
		Key:     "legal.sponsorship",
		Phrase:  "Sponsorship",
		Pattern: `sponsorship|visa`,
		Selectors: []string{
			`input[name*="sponsorship"]`, `input[name*="visa"]`, `[data-automation-id*="sponsorship"]`,
			`input[name^="entry."]`,
		},
	},
	{
		Key:     "eeoc.gender",
		Phrase:  "Gender",
		Pattern: `gender|sex`,
		Selectors: []string{
			`input[name*="gender"]`, `select[name*="gender"]`, `[data-automation-id="gender"]`,
			`select[name="job_application[gender]"]`, `input[name^="entry."]`,
		},
	},
	{
		Key:     "eeoc.race",
		Phrase:  "Race",
		Pattern: `race|ethnicity`,
		Selectors: []string{
			`input[name*="race"]`, `select[name*="race"]`, `select[name*="ethnicity"]`,
			`[data-automation-id="race"]`, `select[name="job_application[race]"]`, `input[name^="entry."]`,
		},
	},
	{
		Key:     "eeoc.veteran",
		Phrase:  "Veteran",
		Pattern: `veteran`,
		Selectors: []string{
			`input[name*="veteran"]`, `select[name*="veteran"]`, `[data-automation-id="veteran"]`,
			`select[name="job_application[veteran_status]"]`, `input[name^="entry."]`,
		},
	},
	{
		Key:     "eeoc.disability",
		Phrase:  "Disability",
		Pattern: `disability`,
		Selectors: []string{
			`input[name*="disability"]`, `select[name*="disability"]`, `[data-automation-id="disability"]`,
			`select[name="job_application[disability_status]"]`, `input[name^="entry."]`,
		},
	},
	{
		Key:     "profile.skills",
		Phrase:  "Skills",
		Pattern: `skills|technologies`,
		Selectors: []string{
			`input[name*="skills"]`, `textarea[name*="skills"]`, `[data-automation-id="skills"]`,
			`input[name="key_skills"]`, `textarea[name="key_skills"]`, `input[name="primary_skills"]`,
			`input[name^="entry."][type="text"]`, `textarea[name^="entry."]`,
		},
	},
	{
		Key:     "profile.reasonForChange",
		Phrase:  "Reason for Change",
		Pattern: `reason\s*for\s*change|why\s*change|reason\s*for\s*leaving`,
		Selectors: []string{
			`textarea[name*="reason"]`, `input[name*="reason"]`, `[data-automation-id="reasonForChange"]`,
			`textarea[name="reason_for_change"]`, `textarea[name^="entry."]`,
			`input[name^="entry."][type="text"]`,
		},
	},
	{
		Key:     "profile.summary",
		Phrase:  "Summary",
		Pattern: `summary|headline|bio|about\s*me`,
		Selectors: []string{
			`textarea[name*="summary"]`, `textarea[name*="bio"]`, `textarea[name*="about"]`,
			`[data-automation-id="summary"]`, `textarea[name="resume_headline"]`,
			`textarea[name="profile_summary"]`, `textarea[name^="entry."]`,
		},
	},
	{
		Key:     "documents.coverLetter",
		Phrase:  "Cover Letter",
		Pattern: `cover\s*letter|cl`,
		Selectors: []string{
			`textarea[name*="cover"]`, `textarea[name*="letter"]`, `[data-automation-id="coverLetter"]`,
			`textarea[name^="entry."]`,
		},
	},
	{
		Key:     "preferences.referral",
		Phrase:  "How did you hear about us",
		Pattern: `how\s*did\s*you\s*(hear|find)|source\s*you\s*found|where\s*did\s*you|referral`,
		Selectors: []string{
			`select[name*="source"]`, `input[name*="source"]`, `[data-automation-id="source"]`,
			`input[name^="entry."]`, `textarea[name^="entry."]`, `input[aria-label*="source" i]`,
			`input[aria-label*="found" i]`, `input[aria-label*="hear" i]`,
		},
	},
	{
		Key:     "preferences.relocation",
		Phrase:  "Relocate",
		Pattern: `relocate|relocation`,
		Selectors: []string{
			`input[name*="relocat"]`, `select[name*="relocat"]`, `[data-automation-id="relocation"]`,
			`input[name^="entry."]`,
		},
	},
	{
		Key:     "eeoc.pronouns",
		Phrase:  "Pronouns",
		Pattern: `pronoun`,
		Selectors: []string{
			`input[name*="pronoun"]`, `select[name*="pronoun"]`, `[data-automation-id="pronouns"]`,
			`input[name^="entry."]`,
		},
	},
}
