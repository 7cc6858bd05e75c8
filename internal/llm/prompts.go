package llm

// Prompts follow the extraction-agent pattern: strict instructions, an
// explicit output schema, and a no-hallucination constraint. Responses must
// be raw JSON (search, analyze) or plain text (kit, tailor).

const searchPrompt = `You are a job scouting agent. Find current, real job postings for the role %q in or near %q.

### INSTRUCTIONS:
1. Return between 3 and 10 postings.
2. Prefer postings from the last two weeks.
3. Output a valid JSON array only. No markdown fences, no commentary.

### OUTPUT SCHEMA (per element):
{
  "title": "Job title as advertised",
  "company": "Hiring company name",
  "location": "City or 'Remote'",
  "url": "Direct link to the posting",
  "summary": "2-4 sentence description of the role and requirements",
  "source": "Site or channel the posting was found on",
  "postedDate": "Posting date as displayed, e.g. '3 days ago'"
}

### CONSTRAINT:
If a field is unknown, use an empty string. Do not invent postings.`

const analyzePrompt = `You are a job-fit analyst for a senior design professional. Score the posting below.

### POSTING:
Title: %s
Company: %s
Location: %s
Description: %s

### INSTRUCTIONS:
Output a single valid JSON object only. No markdown fences, no commentary.

### OUTPUT SCHEMA:
{
  "score": 0-100 fit score,
  "verdict": "One-sentence assessment",
  "strategy": "2-3 sentences on how to approach the application",
  "isHighValue": true when the fit is exceptional,
  "isCommuteRisk": true when the location implies a difficult commute,
  "matchedKeywords": ["skills", "from", "the", "posting"],
  "industry": "One of: Tech, Fintech, Insurance, Public Sector, Agency, Other",
  "workPattern": "e.g. 'Fully remote', 'Hybrid, 2 days on-site', 'Office based'"
}

### CONSTRAINT:
Base everything on the posting text. Do not guess missing facts.`

const kitPrompt = `You are an application coach. Expand the strategy for this job into a concrete application kit.

### JOB:
Title: %s
Company: %s
Verdict: %s
Current strategy: %s
Matched keywords: %s

### INSTRUCTIONS:
Write an extended strategy: positioning, three talking points, and what to lead the cover letter with. Plain text, no JSON, no markdown headings.`

const tailorPrompt = `You are a résumé editor. Tailor the base résumé below for one specific job.

### TARGET JOB:
Title: %s
Company: %s
Description: %s
Keywords to emphasise: %s

### BASE RESUME:
%s

### INSTRUCTIONS:
Return the full tailored résumé as plain text. Reorder and reword to match the target job; never invent experience that is not in the base résumé.`
